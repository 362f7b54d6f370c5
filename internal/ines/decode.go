// Package ines implements a decoder for cartridge images in the iNES format.
// https://www.nesdev.org/wiki/INES
package ines

import "slices"

// cursor reads consecutive sections of an image and fails instead of
// returning short sections.
type cursor struct {
	data   []byte
	offset int
}

// next returns a copy of the next size bytes and advances the cursor.
func (c *cursor) next(section string, size int) ([]byte, error) {
	available := len(c.data) - c.offset
	if size > available {
		return nil, &TruncatedError{
			Section:   section,
			Offset:    c.offset,
			Size:      size,
			Available: available,
		}
	}

	b := slices.Clone(c.data[c.offset : c.offset+size])
	c.offset += size
	return b, nil
}

// nextIf returns the next section if present is set, otherwise an empty
// section without advancing the cursor.
func (c *cursor) nextIf(present bool, section string, size int) ([]byte, error) {
	if !present || size == 0 {
		return []byte{}, nil
	}
	return c.next(section, size)
}

// rest returns a copy of all remaining bytes.
func (c *cursor) rest() []byte {
	b := slices.Clone(c.data[c.offset:])
	c.offset = len(c.data)
	return b
}

// Decode decodes an iNES image. The returned image owns copies of all
// sections, data is not modified or referenced after returning.
// The error wraps ErrInvalidSignature or ErrTruncatedImage.
func Decode(data []byte) (*Image, error) {
	var h Header
	if n := copy(h[:], data); n < len(Signature) || !h.HasValidSignature() {
		return nil, ErrInvalidSignature
	}

	c := &cursor{data: data}
	if _, err := c.next(SectionHeader, HeaderSize); err != nil {
		return nil, err
	}

	img := &Image{
		size:   len(data),
		header: h,
	}
	if err := img.readSections(c); err != nil {
		return nil, err
	}
	img.decodeFlags()
	return img, nil
}

func (img *Image) readSections(c *cursor) error {
	h := img.header
	var err error

	img.trainer, err = c.nextIf(h.HasTrainer(), SectionTrainer, TrainerSize)
	if err != nil {
		return err
	}

	img.prg, err = c.nextIf(true, SectionPRGROM, PRGROMUnitSize*int(h.PRGROMUnits()))
	if err != nil {
		return err
	}

	img.chr, err = c.nextIf(true, SectionCHRROM, CHRROMUnitSize*int(h.CHRROMUnits()))
	if err != nil {
		return err
	}
	if h.CHRROMUnits() == 0 {
		img.chrRAMSize = CHRRAMSize
	}

	if !h.PRGRAMAbsent() {
		img.prgRAMSize = PRGRAMUnitSize * int(h.PRGRAMUnits())
	}

	pc := h.HasPlayChoice()
	img.pcInstROM, err = c.nextIf(pc, SectionPlayChoiceINSTROM, PlayChoiceINSTROMSize)
	if err != nil {
		return err
	}
	img.pcPROMData, err = c.nextIf(pc, SectionPlayChoicePROMData, PlayChoicePROMDataSize)
	if err != nil {
		return err
	}
	img.pcPROMCounterOut, err = c.nextIf(pc, SectionPlayChoicePROMCounterOut, PlayChoicePROMCounterOutSize)
	if err != nil {
		return err
	}

	img.title = c.rest()
	return nil
}

// decodeFlags sets all fields that only depend on the header.
func (img *Image) decodeFlags() {
	h := img.header

	img.mapper = h.MapperNumber()
	if isSet(h.Flags6(), flag6Mirroring) {
		img.mirroring = MirroringVertical
	}
	img.battery = isSet(h.Flags6(), flag6Battery)
	img.fourScreen = isSet(h.Flags6(), flag6FourScreen)

	switch {
	case h.IsVsSystem():
		img.console = ConsoleVsSystem
	case h.HasPlayChoice():
		img.console = ConsolePlayChoice10
	default:
		img.console = ConsoleNES
	}

	if isSet(h.Flags9(), flag9PAL) {
		img.tvSystem = TVSystemPAL
	}
}
