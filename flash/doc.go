// Package flash defines the core data model for working with fixed-size
// flash ROM images: the Image byte buffer, the Layout mapping section names
// to byte ranges, and the pure section accessors GetSection and PutSection.
//
// Images are immutable by convention. Every operation that "changes" an
// image returns a fresh Image value; callers never see a partially updated
// buffer. Higher-level packages build on this model:
//
//   - layout compiles textual descriptions (and embedded FMAP structures)
//     into Layout values
//   - verify performs skip-masked image comparison
//   - journal accumulates pending section edits
//   - engine drives journaled commits against a device.Device
package flash
