// Package extract writes the sections of a decoded image to separate files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/nesrominfo/internal/ines"
)

// file extensions of the extracted sections.
const (
	ExtHeader                   = "hdr"
	ExtTrainer                  = "trn"
	ExtPRG                      = "prg"
	ExtCHR                      = "chr"
	ExtPlayChoiceINSTROM        = "pcinst"
	ExtPlayChoicePROMData       = "pcprom"
	ExtPlayChoicePROMCounterOut = "pccnt"
	ExtTitle                    = "title"
)

// Sections writes all non-empty sections of the image to the directory,
// named base.<extension>. The directory is created if it does not exist.
// It returns the paths of the written files.
func Sections(dir, base string, img *ines.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	header := img.Header()
	sections := []struct {
		ext  string
		data []byte
	}{
		{ExtHeader, header[:]},
		{ExtTrainer, img.Trainer()},
		{ExtPRG, img.PRG()},
		{ExtCHR, img.CHR()},
		{ExtPlayChoiceINSTROM, img.PlayChoiceINSTROM()},
		{ExtPlayChoicePROMData, img.PlayChoicePROMData()},
		{ExtPlayChoicePROMCounterOut, img.PlayChoicePROMCounterOut()},
		{ExtTitle, img.Title()},
	}

	var paths []string
	for _, sec := range sections {
		if len(sec.data) == 0 {
			continue
		}

		path := filepath.Join(dir, base+"."+sec.ext)
		if err := os.WriteFile(path, sec.data, 0o644); err != nil {
			return paths, fmt.Errorf("writing file %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
