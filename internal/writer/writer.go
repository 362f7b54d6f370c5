// Package writer implements the cartridge report writing.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/retroenv/nesrominfo/internal/ines"
)

// Checksums contains the CRC32 checksums to identify the PRG and CHR parts of the ROM.
type Checksums struct {
	PRG     uint32
	CHR     uint32
	Overall uint32 // PRG followed by CHR, the header and trainer are not included
}

// CalculateChecksums returns the CRC32 checksums of the image.
func CalculateChecksums(img *ines.Image) Checksums {
	crc32q := crc32.MakeTable(crc32.IEEE)
	prg := img.PRG()
	chr := img.CHR()
	return Checksums{
		PRG:     crc32.Checksum(prg, crc32q),
		CHR:     crc32.Checksum(chr, crc32q),
		Overall: crc32.Checksum(append(prg, chr...), crc32q),
	}
}

// Writer writes a human readable report of a decoded image.
type Writer struct {
	img    *ines.Image
	name   string
	writer io.Writer
}

// New creates a new report writer for the image that was loaded from
// the file with the given name.
func New(img *ines.Image, name string, writer io.Writer) *Writer {
	return &Writer{
		img:    img,
		name:   name,
		writer: writer,
	}
}

type line struct {
	key   string
	value any
}

type section struct {
	name string
	data []byte
}

// Write writes the complete report.
func (w Writer) Write() error {
	img := w.img
	h := img.Header()

	lines := []line{
		{"File", w.name},
		{"Size", fmt.Sprintf("%d bytes", img.Size())},
		{"Header", fmt.Sprintf("% X", h[:])},
		{"Mapper", img.Mapper()},
		{"Mirroring", img.Mirroring()},
		{"Nametable layout", img.NametableLayout()},
		{"Battery", yesNo(img.HasBattery())},
		{"Console", img.Console()},
		{"TV system", img.TVSystem()},
		{"PRG-RAM", sizeString(img.PRGRAMSize())},
		{"CHR-RAM", sizeString(img.CHRRAMSize())},
	}
	if h.IsNES2() {
		lines = append(lines, line{"Note", "NES 2.0 header, extension fields are not decoded"})
	}

	for _, l := range lines {
		if err := w.writeLine(l.key, fmt.Sprint(l.value)); err != nil {
			return err
		}
	}

	if err := w.writeSections(); err != nil {
		return err
	}

	if title := img.TitleString(); title != "" {
		if err := w.writeLine("Title", fmt.Sprintf("%q", title)); err != nil {
			return err
		}
	}

	checksums := CalculateChecksums(img)
	if err := w.writeLine("PRG CRC32", fmt.Sprintf("%08x", checksums.PRG)); err != nil {
		return err
	}
	if img.HasCHRROM() {
		if err := w.writeLine("CHR CRC32", fmt.Sprintf("%08x", checksums.CHR)); err != nil {
			return err
		}
	}
	return w.writeLine("Overall CRC32", fmt.Sprintf("%08x", checksums.Overall))
}

func (w Writer) writeSections() error {
	img := w.img
	sections := []section{
		{ines.SectionTrainer, img.Trainer()},
		{ines.SectionPRGROM, img.PRG()},
		{ines.SectionCHRROM, img.CHR()},
		{ines.SectionPlayChoiceINSTROM, img.PlayChoiceINSTROM()},
		{ines.SectionPlayChoicePROMData, img.PlayChoicePROMData()},
		{ines.SectionPlayChoicePROMCounterOut, img.PlayChoicePROMCounterOut()},
		{ines.SectionTitle, img.Title()},
	}

	crc32q := crc32.MakeTable(crc32.IEEE)
	for _, sec := range sections {
		value := "not present"
		if len(sec.data) > 0 {
			value = fmt.Sprintf("%s, crc32 %08x", sizeString(len(sec.data)), crc32.Checksum(sec.data, crc32q))
		}
		if err := w.writeLine(sec.name, value); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeLine(key, value string) error {
	if _, err := fmt.Fprintf(w.writer, "%-28s %s\n", key+":", value); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func sizeString(size int) string {
	switch {
	case size == 0:
		return "none"
	case size%1024 == 0:
		return fmt.Sprintf("%d KiB", size/1024)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
