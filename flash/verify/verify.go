// Package verify compares flash images while ignoring known-volatile byte
// ranges. Some flash parts update timestamps or checksums on their own
// immediately after a write; a skip region names such a range so equality
// checks do not trip over it.
package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/flashkit/flash"
)

// DefaultPad is the byte written over skip regions before comparison.
const DefaultPad byte = 0x00

// SkipRegion identifies a sub-range of a named section to exclude from
// equality comparisons. Offset is relative to the section start.
type SkipRegion struct {
	Section string
	Offset  int
	Size    int
}

// ParseSkipRegions decodes the textual skip list format: comma-separated
// "name:offset:size" entries, offsets and sizes in decimal or 0x hex.
// An empty string yields no regions.
func ParseSkipRegions(s string) ([]SkipRegion, error) {
	var out []SkipRegion
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("verify: skip entry %q: want name:offset:size", entry)
		}
		off, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("verify: skip entry %q offset: %w", entry, err)
		}
		size, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("verify: skip entry %q size: %w", entry, err)
		}
		out = append(out, SkipRegion{
			Section: strings.TrimSpace(fields[0]),
			Offset:  int(off),
			Size:    int(size),
		})
	}
	return out, nil
}

// MaskImage returns a copy of img with every skip region overwritten by pad.
// Regions are applied independently in order; overlaps are fine since the
// pad value is constant. A region naming an unknown section fails with
// flash.ErrUnknownSection, one reaching outside the image with
// flash.ErrInvalidRange.
func MaskImage(img flash.Image, l flash.Layout, regions []SkipRegion, pad byte) (flash.Image, error) {
	out := img.Clone()
	for _, reg := range regions {
		r, ok := l[reg.Section]
		if !ok {
			return nil, fmt.Errorf("skip region section %q: %w", reg.Section, flash.ErrUnknownSection)
		}
		abs := r.Start + reg.Offset
		if reg.Offset < 0 || reg.Size < 0 || abs+reg.Size > len(out) {
			return nil, fmt.Errorf("skip region %s+0x%X[%d]: %w",
				reg.Section, reg.Offset, reg.Size, flash.ErrInvalidRange)
		}
		for i := 0; i < reg.Size; i++ {
			out[abs+i] = pad
		}
	}
	return out, nil
}

// SectionsEqual compares from and to. With both name lists empty the whole
// images are compared after masking the skip regions out of each. With
// names given, the pairs of sections are compared raw: masking is defined
// only at whole-image granularity, so callers needing masked section
// comparison must pre-mask the images themselves.
func SectionsEqual(l flash.Layout, from, to flash.Image, fromNames, toNames []string, regions []SkipRegion) (bool, error) {
	if len(fromNames) == 0 && len(toNames) == 0 {
		return WholeImagesEqual(l, from, to, regions)
	}

	// Pair names zip-style; a surplus on either side is ignored.
	n := len(fromNames)
	if len(toNames) < n {
		n = len(toNames)
	}
	for i := 0; i < n; i++ {
		a, err := flash.GetSection(from, l, fromNames[i])
		if err != nil {
			return false, err
		}
		b, err := flash.GetSection(to, l, toNames[i])
		if err != nil {
			return false, err
		}
		if !flash.Image(a).Equal(flash.Image(b)) {
			return false, nil
		}
	}
	return true, nil
}

// WholeImagesEqual reports whether the two images match byte-for-byte
// outside the skip regions.
func WholeImagesEqual(l flash.Layout, a, b flash.Image, regions []SkipRegion) (bool, error) {
	ma, err := MaskImage(a, l, regions, DefaultPad)
	if err != nil {
		return false, err
	}
	mb, err := MaskImage(b, l, regions, DefaultPad)
	if err != nil {
		return false, err
	}
	return ma.Equal(mb), nil
}
