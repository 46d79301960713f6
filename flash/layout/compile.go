package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/flashkit/flash"
)

// spareMark tags a section whose size is resolved from the partition
// remainder. Fixed sizes are always positive, so -1 cannot collide.
const spareMark = -1

// unnamed is the reserved name for sections that consume space but are
// omitted from the compiled layout.
const unnamed = "*"

type section struct {
	name string
	size int
}

// Compile builds a layout from a textual description against a known total
// image size. Section ranges are assigned in declared order; within each
// partition they are contiguous, non-overlapping, and together span exactly
// the partition's block.
func Compile(desc string, totalSize int) (flash.Layout, error) {
	desc = stripSpace(desc)
	parts := strings.Split(desc, "|")

	if totalSize <= 0 {
		return nil, fmt.Errorf("total size %d: %w", totalSize, ErrParse)
	}
	if totalSize%len(parts) != 0 {
		return nil, fmt.Errorf("%d bytes across %d partitions: %w",
			totalSize, len(parts), ErrIndivisible)
	}
	blockSize := totalSize / len(parts)

	out := flash.Layout{}
	offset := 0
	for pi, part := range parts {
		sections, err := parsePartition(part)
		if err != nil {
			return nil, fmt.Errorf("partition %d: %w", pi, err)
		}

		// Resolve the spare section from what the fixed sizes left over.
		fixed := 0
		spareAt := -1
		for i, s := range sections {
			if s.size == spareMark {
				spareAt = i
				continue
			}
			fixed += s.size
		}
		spare := blockSize - fixed
		if spare <= 0 {
			return nil, fmt.Errorf("partition %d: fixed sections use %d of %d bytes: %w",
				pi, fixed, blockSize, ErrOverflow)
		}
		sections[spareAt].size = spare

		for _, s := range sections {
			if s.name != unnamed {
				if _, dup := out[s.name]; dup {
					return nil, fmt.Errorf("duplicate section %q: %w", s.name, ErrParse)
				}
				out[s.name] = flash.Range{Start: offset, End: offset + s.size - 1}
			}
			offset += s.size
		}
	}
	return out, nil
}

// parsePartition splits one partition body into sections and validates that
// exactly one of them is the spare.
func parsePartition(part string) ([]section, error) {
	var sections []section
	spares := 0

	for _, tok := range strings.Split(part, ",") {
		if tok == "" {
			// Tolerate a trailing comma.
			continue
		}
		s, err := parseSection(tok)
		if err != nil {
			return nil, err
		}
		if s.size == spareMark {
			spares++
		}
		sections = append(sections, s)
	}

	if spares != 1 {
		return nil, fmt.Errorf("%d spare sections: %w", spares, ErrSpareCount)
	}
	return sections, nil
}

// parseSection decodes one "name=size", "name=*", or bare "name" token.
func parseSection(tok string) (section, error) {
	name, sizeTok, hasSize := strings.Cut(tok, "=")
	if name == "" {
		return section{}, fmt.Errorf("token %q: %w", tok, ErrParse)
	}
	if !hasSize || sizeTok == "*" {
		return section{name: name, size: spareMark}, nil
	}

	size, err := strconv.ParseInt(sizeTok, 0, 64)
	if err != nil {
		return section{}, fmt.Errorf("size %q: %w", sizeTok, ErrParse)
	}
	if size <= 0 {
		return section{}, fmt.Errorf("size %d of %q must be positive: %w", size, name, ErrParse)
	}
	return section{name: name, size: int(size)}, nil
}

// stripSpace removes every whitespace byte from the description.
func stripSpace(desc string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return -1
		}
		return r
	}, desc)
}
