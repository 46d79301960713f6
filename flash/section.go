package flash

import "fmt"

// checkRange validates that name addresses a usable range of img.
func checkRange(img Image, l Layout, name string) (Range, error) {
	r, ok := l[name]
	if !ok {
		return Range{}, fmt.Errorf("section %q: %w", name, ErrUnknownSection)
	}
	if r.Start < 0 || r.Start >= r.End || r.End >= len(img) {
		return Range{}, fmt.Errorf("section %q [0x%X,0x%X] in %d-byte image: %w",
			name, r.Start, r.End, len(img), ErrInvalidRange)
	}
	return r, nil
}

// GetSection returns a copy of the bytes the named section occupies in img.
func GetSection(img Image, l Layout, name string) ([]byte, error) {
	r, err := checkRange(img, l, name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, r.Len())
	copy(out, img[r.Start:r.End+1])
	return out, nil
}

// PutSection returns a new image equal to img with the named section
// replaced by data. Every byte outside the section is carried over
// unchanged; img itself is never modified.
func PutSection(img Image, l Layout, name string, data []byte) (Image, error) {
	r, err := checkRange(img, l, name)
	if err != nil {
		return nil, err
	}
	if len(data) != r.Len() {
		return nil, fmt.Errorf("section %q wants %d bytes, data has %d: %w",
			name, r.Len(), len(data), ErrLengthMismatch)
	}
	out := img.Clone()
	copy(out[r.Start:r.End+1], data)
	return out, nil
}
