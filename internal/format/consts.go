// Package format houses the low-level decoder for the FMAP flash map
// structure embedded in firmware images. The goal is to keep the parsing
// focused and independent from the public API so higher-level packages can
// orchestrate the data in a more ergonomic form.
package format

var (
	// FMAPSignature is the eight-byte magic that marks an embedded flash map.
	// Layout:
	//   0x00  '_' '_' 'F' 'M' 'A' 'P' '_' '_'
	FMAPSignature = []byte{'_', '_', 'F', 'M', 'A', 'P', '_', '_'}
)

const (
	// FMAPSignatureSize is the length of the FMAP magic.
	FMAPSignatureSize = 8

	// FMAPHeaderSize is the size of the fixed FMAP header in bytes.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------------------------
	//	 0x00    8    '__FMAP__'
	//	 0x08    1    Major version
	//	 0x09    1    Minor version
	//	 0x0A    8    Base address of the flash chip (little-endian)
	//	 0x12    4    Size of the flash chip (little-endian)
	//	 0x16   32    Name of the map, NUL padded
	//	 0x36    2    Number of areas that follow (little-endian)
	FMAPHeaderSize = 0x38

	// FMAPAreaSize is the size of one area record following the header.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------------------------
	//	 0x00    4    Area offset relative to the chip base
	//	 0x04    4    Area size
	//	 0x08   32    Area name, NUL padded
	//	 0x28    2    Area flags
	FMAPAreaSize = 0x2A

	// FMAPNameSize is the width of the fixed name fields.
	FMAPNameSize = 32

	// FMAPSearchStride is the alignment at which the signature is searched.
	// Firmware build tools place the map on a 4-byte boundary.
	FMAPSearchStride = 4

	// fmapVerMajorOffset through fmapNAreasOffset locate the header fields.
	fmapVerMajorOffset = 0x08
	fmapVerMinorOffset = 0x09
	fmapBaseOffset     = 0x0A
	fmapSizeOffset     = 0x12
	fmapNameOffset     = 0x16
	fmapNAreasOffset   = 0x36
)
