// Package loader handles cartridge file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Loader reads complete cartridge images, it does not interpret the content.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the full content of the file at the given path.
// Errors wrap the underlying fs errors, so errors.Is(err, fs.ErrNotExist)
// and fs.ErrPermission can be used to check for them.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading file %s: is a directory", path)
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads all data of the reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	return data, nil
}
