package ines

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature is returned when the data does not start with the iNES signature.
	ErrInvalidSignature = errors.New("invalid iNES signature")
	// ErrTruncatedImage is returned when a section declared by the header
	// extends past the end of the data.
	ErrTruncatedImage = errors.New("truncated iNES image")
)

// TruncatedError describes the section that could not be read completely.
type TruncatedError struct {
	Section   string
	Offset    int // start of the section in the image
	Size      int // expected size of the section
	Available int // bytes available starting at Offset
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: section %s at offset 0x%X needs %d bytes but only %d are available",
		ErrTruncatedImage, e.Section, e.Offset, e.Size, e.Available)
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncatedImage
}
