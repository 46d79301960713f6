package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/flashkit/internal/buf"
)

// FMAP captures the decoded flash map header plus its area records.
type FMAP struct {
	VerMajor byte
	VerMinor byte
	Base     uint64
	Size     uint32
	Name     string
	Areas    []Area
}

// Area is one named region of the flash chip as declared by the map.
type Area struct {
	Offset uint32
	Size   uint32
	Name   string
	Flags  uint16
}

// ParseFMAP decodes an FMAP structure starting at b[0].
func ParseFMAP(b []byte) (FMAP, error) {
	if len(b) < FMAPHeaderSize {
		return FMAP{}, fmt.Errorf("fmap header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:FMAPSignatureSize], FMAPSignature) {
		return FMAP{}, fmt.Errorf("fmap header: %w", ErrSignatureMismatch)
	}
	m := FMAP{
		VerMajor: b[fmapVerMajorOffset],
		VerMinor: b[fmapVerMinorOffset],
		Base:     buf.U64LE(b[fmapBaseOffset:]),
		Size:     buf.U32LE(b[fmapSizeOffset:]),
		Name:     buf.CString(b[fmapNameOffset : fmapNameOffset+FMAPNameSize]),
	}
	nareas := int(buf.U16LE(b[fmapNAreasOffset:]))

	need, ok := buf.AddOverflowSafe(FMAPHeaderSize, nareas*FMAPAreaSize)
	if !ok || len(b) < need {
		return FMAP{}, fmt.Errorf("fmap areas (%d declared): %w", nareas, ErrTruncated)
	}

	m.Areas = make([]Area, 0, nareas)
	for i := 0; i < nareas; i++ {
		rec := b[FMAPHeaderSize+i*FMAPAreaSize:]
		a := Area{
			Offset: buf.U32LE(rec),
			Size:   buf.U32LE(rec[4:]),
			Name:   buf.CString(rec[8 : 8+FMAPNameSize]),
			Flags:  buf.U16LE(rec[8+FMAPNameSize:]),
		}
		if uint64(a.Offset)+uint64(a.Size) > uint64(m.Size) {
			return FMAP{}, fmt.Errorf("fmap area %q: %w", a.Name, ErrAreaBounds)
		}
		m.Areas = append(m.Areas, a)
	}
	return m, nil
}

// FindFMAP locates and decodes an FMAP structure anywhere in image. The
// signature is searched on FMAPSearchStride boundaries, matching how firmware
// build tools embed the map.
func FindFMAP(image []byte) (FMAP, error) {
	for off := 0; off+FMAPHeaderSize <= len(image); off += FMAPSearchStride {
		if image[off] != FMAPSignature[0] {
			continue
		}
		if !bytes.Equal(image[off:off+FMAPSignatureSize], FMAPSignature) {
			continue
		}
		m, err := ParseFMAP(image[off:])
		if err != nil {
			// A stray signature-like run of bytes; keep scanning.
			continue
		}
		return m, nil
	}
	return FMAP{}, ErrNoFMAP
}
