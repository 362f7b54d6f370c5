package ines

import (
	"bytes"
	"slices"
)

// Section sizes in bytes.
const (
	TrainerSize                  = 512
	PRGROMUnitSize               = 16384
	CHRROMUnitSize               = 8192
	CHRRAMSize                   = 8192
	PRGRAMUnitSize               = 8192
	PlayChoiceINSTROMSize        = 8192
	PlayChoicePROMDataSize       = 16384
	PlayChoicePROMCounterOutSize = 16384
)

// Section names as used in errors and by tooling.
const (
	SectionHeader                   = "header"
	SectionTrainer                  = "trainer"
	SectionPRGROM                   = "PRG-ROM"
	SectionCHRROM                   = "CHR-ROM"
	SectionPlayChoiceINSTROM        = "PlayChoice INST-ROM"
	SectionPlayChoicePROMData       = "PlayChoice PROM data"
	SectionPlayChoicePROMCounterOut = "PlayChoice PROM counter-out"
	SectionTitle                    = "title"
)

// Image is a decoded iNES cartridge image. It owns copies of all sections
// and is never modified after decoding, all accessors return copies.
type Image struct {
	size   int
	header Header

	trainer []byte
	prg     []byte
	chr     []byte

	chrRAMSize int
	prgRAMSize int

	pcInstROM        []byte
	pcPROMData       []byte
	pcPROMCounterOut []byte

	title []byte

	mapper     uint8
	mirroring  Mirroring
	battery    bool
	fourScreen bool
	console    ConsoleType
	tvSystem   TVSystem
}

// Size returns the size of the original image in bytes.
func (img *Image) Size() int { return img.size }

// Header returns the raw 16 byte header.
func (img *Image) Header() Header { return img.header }

// Trainer returns the 512 byte trainer or an empty slice.
func (img *Image) Trainer() []byte { return slices.Clone(img.trainer) }

// HasTrainer returns whether the image contains a trainer.
func (img *Image) HasTrainer() bool { return len(img.trainer) > 0 }

// PRG returns the PRG ROM.
func (img *Image) PRG() []byte { return slices.Clone(img.prg) }

// CHR returns the CHR ROM, it is empty if the board uses CHR RAM.
func (img *Image) CHR() []byte { return slices.Clone(img.chr) }

// HasCHRROM returns whether the image contains CHR ROM.
func (img *Image) HasCHRROM() bool { return len(img.chr) > 0 }

// CHRRAMSize returns the size of the CHR RAM implied by a missing CHR ROM.
func (img *Image) CHRRAMSize() int { return img.chrRAMSize }

// PRGRAMSize returns the size of the PRG RAM.
func (img *Image) PRGRAMSize() int { return img.prgRAMSize }

func (img *Image) PlayChoiceINSTROM() []byte { return slices.Clone(img.pcInstROM) }

func (img *Image) PlayChoicePROMData() []byte { return slices.Clone(img.pcPROMData) }

func (img *Image) PlayChoicePROMCounterOut() []byte { return slices.Clone(img.pcPROMCounterOut) }

// Title returns the trailing bytes that follow all known sections.
func (img *Image) Title() []byte { return slices.Clone(img.title) }

// TitleString returns the title with trailing NUL and 0xFF padding removed.
func (img *Image) TitleString() string {
	return string(bytes.TrimRight(img.title, "\x00\xff"))
}

// Mapper returns the mapper number.
func (img *Image) Mapper() uint8 { return img.mapper }

// Mirroring returns the hard-wired mirroring, see FourScreen for the override.
func (img *Image) Mirroring() Mirroring { return img.mirroring }

// HasBattery returns whether the cartridge has battery-backed memory.
func (img *Image) HasBattery() bool { return img.battery }

// FourScreen returns whether the cartridge provides four-screen VRAM.
func (img *Image) FourScreen() bool { return img.fourScreen }

// Console returns the console type.
func (img *Image) Console() ConsoleType { return img.console }

// TVSystem returns the TV system.
func (img *Image) TVSystem() TVSystem { return img.tvSystem }

// NametableLayout returns the effective nametable layout.
func (img *Image) NametableLayout() NametableLayout {
	switch {
	case img.fourScreen:
		return LayoutFourScreen
	case img.mirroring == MirroringVertical:
		return LayoutVertical
	default:
		return LayoutHorizontal
	}
}
