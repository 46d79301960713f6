package layout

import "errors"

var (
	// ErrParse indicates a malformed section token in a description.
	ErrParse = errors.New("layout: malformed description")
	// ErrSpareCount indicates a partition with zero or multiple spare sections.
	ErrSpareCount = errors.New("layout: partition needs exactly one spare section")
	// ErrOverflow indicates fixed sections that leave no room for the spare.
	ErrOverflow = errors.New("layout: sections exceed partition block")
	// ErrIndivisible indicates a total size not evenly divisible by the
	// partition count. The remainder would silently fall out of every
	// partition, so the description is rejected instead.
	ErrIndivisible = errors.New("layout: size not divisible by partition count")
	// ErrNoSource indicates that neither a description nor an embedded flash
	// map was available to build a layout from.
	ErrNoSource = errors.New("layout: no layout source")
)
