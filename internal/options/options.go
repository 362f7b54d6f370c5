// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input      string // input ROM file
	Output     string // report output file, printed on console if empty
	ExtractDir string // directory to extract the sections to, disabled if empty
	Batch      string // batch process files matching the pattern
}

// Flags contains behavior options.
type Flags struct {
	Verify bool // cross-verify the decoded image using the reference parser
	Debug  bool
	Quiet  bool
	Jobs   int // number of files to decode in parallel in batch mode
}

// Program options of the ROM info tool.
type Program struct {
	Parameters
	Flags
}
