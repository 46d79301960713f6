package flash

import "errors"

var (
	// ErrUnknownSection indicates a section name that is not in the layout.
	ErrUnknownSection = errors.New("flash: unknown section")
	// ErrInvalidRange indicates a layout range that cannot address the image.
	ErrInvalidRange = errors.New("flash: invalid section range")
	// ErrLengthMismatch indicates replacement data whose length differs from
	// the section it targets.
	ErrLengthMismatch = errors.New("flash: data length does not match section")
)
