package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrNoFMAP indicates no flash map signature was found in the image.
	ErrNoFMAP = errors.New("format: no FMAP structure in image")
	// ErrAreaBounds indicates an area record points outside the flash chip.
	ErrAreaBounds = errors.New("format: area outside chip bounds")
)
