// Package device defines the adapter boundary to physical flash hardware
// and provides two concrete implementations: an in-memory device for tests
// and a file-backed device for operating on image files.
//
// Implementations perform blocking I/O with no timeout of their own;
// callers that need deadlines wrap the calls themselves.
package device

import (
	"errors"

	"github.com/joshuapare/flashkit/flash"
)

var (
	// ErrUnknownTarget indicates a SelectTarget name the device does not have.
	ErrUnknownTarget = errors.New("device: unknown target")
	// ErrShortImage indicates a write image smaller than the device.
	ErrShortImage = errors.New("device: image does not cover device size")
)

// Device is the boundary to a flash part. One Device value maps to one
// physical target at a time; callers serialize access themselves.
type Device interface {
	// Size returns the total addressable byte length of the selected target.
	Size() (int, error)

	// SelectTarget directs subsequent reads and writes to a named physical
	// region, such as one of two independently addressable chips.
	SelectTarget(name string) error

	// ReadWhole returns the full current contents of the selected target.
	// The returned image length equals Size().
	ReadWhole() (flash.Image, error)

	// WritePartial writes only the named sections' bytes from img to the
	// device. Calling with an empty layout and no section names writes the
	// entire image.
	WritePartial(img flash.Image, l flash.Layout, sections []string) error
}
