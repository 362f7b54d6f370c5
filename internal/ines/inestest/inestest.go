// Package inestest provides helpers to build iNES images for tests.
package inestest

import (
	"bytes"

	"github.com/retroenv/nesrominfo/internal/ines"
)

// Fill values of the different sections, allowing tests to identify them.
const (
	TrainerFill    = 0x11
	PRGFill        = 0x22
	CHRFill        = 0x33
	PlayChoiceFill = 0x44
)

// Image describes an iNES image to build.
type Image struct {
	PRGUnits   byte
	CHRUnits   byte
	Flags6     byte
	Flags7     byte
	PRGRAM     byte
	Flags9     byte
	Trailer    [4]byte // header bytes 12-15
	Trainer    bool
	PlayChoice bool
	Title      []byte
}

// Build returns the encoded image.
func (i Image) Build() []byte {
	var h ines.Header
	copy(h[:], ines.Signature[:])
	h[4] = i.PRGUnits
	h[5] = i.CHRUnits
	h[6] = i.Flags6
	h[7] = i.Flags7
	h[8] = i.PRGRAM
	h[9] = i.Flags9
	copy(h[12:], i.Trailer[:])
	if i.Trainer {
		h[6] |= 1 << 2
	}
	if i.PlayChoice {
		h[7] |= 1 << 1
	}

	var buf bytes.Buffer
	buf.Write(h[:])
	if i.Trainer {
		buf.Write(bytes.Repeat([]byte{TrainerFill}, ines.TrainerSize))
	}
	buf.Write(bytes.Repeat([]byte{PRGFill}, ines.PRGROMUnitSize*int(i.PRGUnits)))
	buf.Write(bytes.Repeat([]byte{CHRFill}, ines.CHRROMUnitSize*int(i.CHRUnits)))
	if i.PlayChoice {
		size := ines.PlayChoiceINSTROMSize + ines.PlayChoicePROMDataSize + ines.PlayChoicePROMCounterOutSize
		buf.Write(bytes.Repeat([]byte{PlayChoiceFill}, size))
	}
	buf.Write(i.Title)
	return buf.Bytes()
}
