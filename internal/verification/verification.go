// Package verification verifies a decoded image against the reference cartridge parser.
package verification

import (
	"bytes"
	"fmt"

	"github.com/retroenv/nesrominfo/internal/ines"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedMismatches limits the logged offset mismatches per section.
const maxLoggedMismatches = 10

// CompareWithReference parses the raw image data using the retrogolib
// cartridge parser and compares the result with the decoded image.
func CompareWithReference(logger *log.Logger, data []byte, img *ines.Image) error {
	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("loading cartridge file using reference parser: %w", err)
	}

	if err := checkBufferEqual(logger, ines.SectionPRGROM, cart.PRG, img.PRG()); err != nil {
		return fmt.Errorf("segment PRG mismatch: %w", err)
	}
	if err := checkBufferEqual(logger, ines.SectionCHRROM, cart.CHR, img.CHR()); err != nil {
		return fmt.Errorf("segment CHR mismatch: %w", err)
	}
	if err := checkBufferEqual(logger, ines.SectionTrainer, cart.Trainer, img.Trainer()); err != nil {
		return fmt.Errorf("trainer mismatch: %w", err)
	}
	return compareCartridgeDetails(logger, cart, img)
}

func compareCartridgeDetails(logger *log.Logger, cart *cartridge.Cartridge, img *ines.Image) error {
	if mapper := referenceMapper(cart, img.Header()); mapper != img.Mapper() {
		return fmt.Errorf("mapper mismatch, expected %d but got %d", mapper, img.Mapper())
	}

	mirror := cartridge.MirrorMode(img.Mirroring())
	if img.FourScreen() {
		mirror = cartridge.Mirror4
	}
	if cart.Mirror != mirror {
		return fmt.Errorf("mirror mismatch, expected %d but got %d", cart.Mirror, mirror)
	}

	if battery := cart.Battery != 0; battery != img.HasBattery() {
		return fmt.Errorf("battery mismatch, expected %t but got %t", battery, img.HasBattery())
	}

	tv := ines.TVSystemNTSC
	if cart.VideoFormat&1 != 0 {
		tv = ines.TVSystemPAL
	}
	if tv != img.TVSystem() {
		return fmt.Errorf("tv system mismatch, expected %s but got %s", tv, img.TVSystem())
	}

	logger.Debug("Reference parser result matches",
		log.Int("prg", len(cart.PRG)),
		log.Int("chr", len(cart.CHR)),
		log.Uint16("mapper", cart.Mapper),
		log.Stringer("mirroring", img.NametableLayout()))
	return nil
}

// referenceMapper returns the mapper number of the reference parser reduced
// to the bits that the iNES decoder assembles. The reference parser always
// merges both nibbles and reads the NES 2.0 mapper extension bits.
func referenceMapper(cart *cartridge.Cartridge, h ines.Header) uint8 {
	mapper := uint8(cart.Mapper)
	if h.MapperHighNibbleIgnored() {
		mapper &= 0x0F
	}
	return mapper
}

func checkBufferEqual(logger *log.Logger, section string, expected, got []byte) error {
	if len(expected) != len(got) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(expected), len(got))
	}

	var diffs uint64
	for i := range expected {
		if expected[i] == got[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.String("section", section),
				log.Hex("offset", i),
				log.Hex("expected", expected[i]),
				log.Hex("got", got[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
