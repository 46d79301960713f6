package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/internal/format"
)

// WholeImageSection is the single section name used by Whole.
const WholeImageSection = "all"

// DetectOptions controls layout auto-detection.
type DetectOptions struct {
	// NameMap renames FMAP area names in the resulting layout. Areas absent
	// from the map keep their FMAP name. Useful when build tools and test
	// infrastructure disagree on section naming.
	NameMap map[string]string
}

// Whole returns the special layout with one section spanning the entire
// image. It backs whole-image writes, where no sub-section granularity
// applies.
func Whole(size int) flash.Layout {
	return flash.Layout{WholeImageSection: flash.Range{Start: 0, End: size - 1}}
}

// FromFMAP decodes the FMAP structure embedded in image and converts its
// areas to a layout. Area names pass through opts.NameMap, and any spaces
// are percent-escaped so a layout name is always a single token.
func FromFMAP(image flash.Image, opts DetectOptions) (flash.Layout, error) {
	m, err := format.FindFMAP(image)
	if err != nil {
		return nil, err
	}
	out := flash.Layout{}
	for _, a := range m.Areas {
		if a.Size == 0 {
			// A zero-length area cannot form an inclusive range.
			continue
		}
		name := a.Name
		if mapped, ok := opts.NameMap[name]; ok {
			name = mapped
		}
		name = strings.ReplaceAll(name, " ", "%20")
		out[name] = flash.Range{
			Start: int(a.Offset),
			End:   int(a.Offset) + int(a.Size) - 1,
		}
	}
	return out, nil
}

// Detect builds a layout for an image of the given size. When image is
// non-empty and carries an embedded FMAP, that map wins; otherwise the
// textual description is compiled against size. Pass a nil image to force
// compilation from the description.
func Detect(desc string, size int, image flash.Image, opts DetectOptions) (flash.Layout, error) {
	if len(image) > 0 {
		l, err := FromFMAP(image, opts)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, format.ErrNoFMAP) {
			return nil, fmt.Errorf("embedded flash map: %w", err)
		}
	}
	if desc == "" {
		return nil, ErrNoSource
	}
	return Compile(desc, size)
}
