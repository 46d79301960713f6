package flash

import "bytes"

// Image is the full contents of a flash chip, or a candidate for it. The
// byte slice is treated as immutable: code in this module never writes
// through an Image it did not just allocate.
type Image []byte

// Clone returns an independent copy of the image.
func (img Image) Clone() Image {
	out := make(Image, len(img))
	copy(out, img)
	return out
}

// Equal reports whether two images hold identical bytes.
func (img Image) Equal(other Image) bool {
	return bytes.Equal(img, other)
}
