package flash

import "sort"

// Range is an inclusive byte range [Start, End] within an image.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Layout maps section names to the byte ranges they occupy. A Layout is
// computed once (see the layout package) and read-only thereafter.
type Layout map[string]Range

// Names returns the section names in ascending Start order. Deterministic
// ordering keeps device invocations and log output stable.
func (l Layout) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := l[names[i]], l[names[j]]
		if ri.Start != rj.Start {
			return ri.Start < rj.Start
		}
		return names[i] < names[j]
	})
	return names
}
