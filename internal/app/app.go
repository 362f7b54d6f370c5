// Package app provides the main application helper for the ROM info tool.
package app

import (
	"github.com/retroenv/nesrominfo/internal/ines"
	"github.com/retroenv/nesrominfo/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the decoded image.
func PrintInfo(logger *log.Logger, opts options.Program, file string, img *ines.Image) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing NES ROM",
		log.String("file", file),
		log.Uint8("mapper", img.Mapper()),
		log.Int("prg", len(img.PRG())),
		log.Int("chr", len(img.CHR())),
		log.Stringer("console", img.Console()),
	)

	h := img.Header()
	if h.IsNES2() {
		logger.Warn("NES 2.0 header detected, only the iNES fields are decoded",
			log.String("file", file))
	}
	if h.MapperHighNibbleIgnored() {
		logger.Warn("Header bytes 12-15 are not zero, ignoring the upper nibble of the mapper number",
			log.String("file", file))
	}
}
