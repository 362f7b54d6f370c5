// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/nesrominfo/internal/config"
	"github.com/retroenv/nesrominfo/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	if opts.Batch != "" && opts.Output != "" {
		return opts, &UsageError{
			flags: flags,
			msg:   "the report output file can not be combined with batch mode",
		}
	}

	config.Normalize(&opts)
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nesrominfo [options] <.nes file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to decode, please pass the file to decode as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output report file, printed on console if no name given")
	flags.StringVar(&opts.ExtractDir, "x", "", "directory to extract the ROM sections to")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .txt report naming, for example *.nes")
	flags.IntVar(&opts.Jobs, "j", 0, "number of files to decode in parallel in batch mode (default: number of CPUs)")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the decoded image by comparing it with the result of the reference cartridge parser")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
