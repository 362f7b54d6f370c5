// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/nesrominfo/internal/app"
	"github.com/retroenv/nesrominfo/internal/extract"
	"github.com/retroenv/nesrominfo/internal/ines"
	"github.com/retroenv/nesrominfo/internal/loader"
	"github.com/retroenv/nesrominfo/internal/options"
	"github.com/retroenv/nesrominfo/internal/verification"
	"github.com/retroenv/nesrominfo/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// decoded is the result of loading and decoding a single file.
type decoded struct {
	file string
	data []byte
	img  *ines.Image
	err  error
}

// ProcessFiles decodes all files, in parallel up to the configured number of
// jobs, and then writes the report, extracts the sections and verifies every
// decoded image in the order of the files. A file that fails does not stop
// the processing of the remaining files.
func ProcessFiles(ctx context.Context, logger *log.Logger, opts options.Program, files []string) error {
	results, err := decodeFiles(ctx, opts, files)
	if err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("processing files: %w", err)
		}

		if err := processDecoded(logger, opts, res); err != nil {
			logger.Error("Processing file failed",
				log.String("file", res.file),
				log.Err(err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func decodeFiles(ctx context.Context, opts options.Program, files []string) ([]decoded, error) {
	results := make([]decoded, len(files))
	ld := loader.New()

	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = decodeFile(ld, file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("decoding files: %w", err)
	}
	return results, nil
}

func decodeFile(ld *loader.Loader, file string) decoded {
	res := decoded{file: file}
	res.data, res.err = ld.Load(file)
	if res.err != nil {
		return res
	}

	res.img, res.err = ines.Decode(res.data)
	if res.err != nil {
		res.err = fmt.Errorf("decoding iNES image: %w", res.err)
	}
	return res
}

func processDecoded(logger *log.Logger, opts options.Program, res decoded) error {
	if res.err != nil {
		return res.err
	}

	app.PrintInfo(logger, opts, res.file, res.img)

	if err := writeReport(opts, res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if opts.ExtractDir != "" {
		base := strings.TrimSuffix(filepath.Base(res.file), filepath.Ext(res.file))
		paths, err := extract.Sections(opts.ExtractDir, base, res.img)
		if err != nil {
			return fmt.Errorf("extracting sections: %w", err)
		}
		logger.Info("Extracted sections",
			log.String("file", res.file),
			log.Int("count", len(paths)),
			log.String("directory", opts.ExtractDir))
	}

	if opts.Verify {
		if err := verification.CompareWithReference(logger, res.data, res.img); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful", log.String("file", res.file))
	}
	return nil
}

func writeReport(opts options.Program, res decoded) error {
	output := opts.Output
	if opts.Batch != "" {
		output = GenerateOutputFilename(res.file)
	}

	w, err := createWriter(output)
	if err != nil {
		return err
	}

	if err := writer.New(res.img, res.file, w).Write(); err != nil {
		_ = closeWriter(w)
		return err
	}
	return closeWriter(w)
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the report filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".txt"
}

func createWriter(output string) (io.Writer, error) {
	if output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

func closeWriter(w io.Writer) error {
	if w == os.Stdout {
		return nil
	}
	if closer, ok := w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("nesrominfo - iNES ROM decoder",
		log.String("version", buildinfo.Version(version, commit, date)))
}
