package ines

import "fmt"

// HeaderSize is the size of the iNES header in bytes.
const HeaderSize = 16

// Signature is the constant that every iNES image starts with, "NES" followed
// by the MS-DOS end-of-file character.
var Signature = [4]byte{0x4E, 0x45, 0x53, 0x1A}

// flags 6, the upper nibble contains the lower nibble of the mapper number.
const (
	flag6Mirroring  = 1 << 0 // 0: horizontal or mapper controlled, 1: vertical
	flag6Battery    = 1 << 1 // battery-backed PRG RAM or other persistent memory
	flag6Trainer    = 1 << 2 // 512-byte trainer stored before PRG data
	flag6FourScreen = 1 << 3 // ignore the mirroring bit, provide four-screen VRAM
)

// flags 7, the upper nibble contains the upper nibble of the mapper number.
const (
	flag7VsSystem   = 1 << 0
	flag7PlayChoice = 1 << 1 // INST-ROM and PROM follow the CHR data
	flag7NES2Mask   = 0x0C
	flag7NES2Value  = 0x08
)

// flags 9
const (
	flag9PAL          = 1 << 0 // 0: NTSC, 1: PAL
	flag9PRGRAMAbsent = 1 << 4 // overrides the PRG RAM size of byte 8
)

// Header is the raw 16 byte iNES header.
// https://www.nesdev.org/wiki/INES
type Header [HeaderSize]byte

// PRGROMUnits returns the size of PRG ROM in 16 KB units.
func (h Header) PRGROMUnits() uint8 { return h[4] }

// CHRROMUnits returns the size of CHR ROM in 8 KB units, 0 means the board uses CHR RAM.
func (h Header) CHRROMUnits() uint8 { return h[5] }

// PRGRAMUnits returns the size of PRG RAM in 8 KB units.
func (h Header) PRGRAMUnits() uint8 { return h[8] }

// Flags6 returns the mirroring, battery, trainer and four-screen flags and
// the lower nibble of the mapper number.
func (h Header) Flags6() uint8 { return h[6] }

// Flags7 returns the console type flags, the NES 2.0 identifier and the
// upper nibble of the mapper number.
func (h Header) Flags7() uint8 { return h[7] }

// Flags9 returns the TV system and PRG RAM absence flags.
func (h Header) Flags9() uint8 { return h[9] }

// Flags10 returns the unofficial byte 10, which is kept for display only.
func (h Header) Flags10() uint8 { return h[10] }

// HasValidSignature returns whether the header starts with the iNES signature.
func (h Header) HasValidSignature() bool {
	return [4]byte(h[0:4]) == Signature
}

// HasTrainer returns whether a 512 byte trainer follows the header.
func (h Header) HasTrainer() bool {
	return isSet(h[6], flag6Trainer)
}

// HasPlayChoice returns whether the PlayChoice-10 INST-ROM and PROM follow the CHR data.
func (h Header) HasPlayChoice() bool {
	return isSet(h[7], flag7PlayChoice)
}

// IsVsSystem returns whether the image targets the VS Unisystem.
func (h Header) IsVsSystem() bool {
	return isSet(h[7], flag7VsSystem)
}

// IsNES2 returns whether the header is marked as NES 2.0. The NES 2.0
// extension fields are not decoded.
func (h Header) IsNES2() bool {
	return h[7]&flag7NES2Mask == flag7NES2Value
}

// PRGRAMAbsent returns whether the header explicitly states that no PRG RAM
// is present at $6000-$7FFF.
func (h Header) PRGRAMAbsent() bool {
	return isSet(h[9], flag9PRGRAMAbsent)
}

// MapperHighNibbleIgnored returns true if the upper 4 bits of the mapper
// number can not be trusted. Older versions of the iNES emulator ignored
// bytes 7-15 and several ROM management tools wrote messages in there,
// commonly "DiskDude!", which results in 64 being added to the mapper number.
// If the last 4 bytes are not all zero and the header is not NES 2.0, only
// the lower nibble is used.
func (h Header) MapperHighNibbleIgnored() bool {
	if h.IsNES2() {
		return false
	}
	for _, b := range h[12:] {
		if b != 0 {
			return true
		}
	}
	return false
}

// MapperNumber returns the mapper number, assembled from the upper nibbles
// of flags 6 and flags 7.
func (h Header) MapperNumber() uint8 {
	low := h[6] >> 4
	if h.MapperHighNibbleIgnored() {
		return low
	}
	return h[7]&0xF0 | low
}

func (h Header) String() string {
	return fmt.Sprintf("prg(%d), chr(%d), flags(%02x, %02x, %02x, %02x, %02x)",
		h[4], h[5], h[6], h[7], h[8], h[9], h[10])
}

// isSet returns whether any bit of mask is set in value.
func isSet(value, mask uint8) bool {
	return value&mask != 0
}
