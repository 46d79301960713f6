// Package testutil provides builders for synthetic firmware images used by
// package tests across the module.
package testutil

import (
	"encoding/binary"

	"github.com/joshuapare/flashkit/internal/format"
)

// BuildFMAP serializes a flash map with the given chip size and areas.
func BuildFMAP(name string, chipSize uint32, areas []format.Area) []byte {
	b := make([]byte, format.FMAPHeaderSize+len(areas)*format.FMAPAreaSize)
	copy(b, format.FMAPSignature)
	b[0x08] = 1 // version major
	b[0x09] = 1 // version minor
	binary.LittleEndian.PutUint32(b[0x12:], chipSize)
	copy(b[0x16:0x16+format.FMAPNameSize], name)
	binary.LittleEndian.PutUint16(b[0x36:], uint16(len(areas)))
	for i, a := range areas {
		rec := b[format.FMAPHeaderSize+i*format.FMAPAreaSize:]
		binary.LittleEndian.PutUint32(rec, a.Offset)
		binary.LittleEndian.PutUint32(rec[4:], a.Size)
		copy(rec[8:8+format.FMAPNameSize], a.Name)
		binary.LittleEndian.PutUint16(rec[8+format.FMAPNameSize:], a.Flags)
	}
	return b
}

// ImageWithFMAP returns a size-byte image filled with fill whose bytes at
// offset carry the serialized map.
func ImageWithFMAP(size int, offset int, fill byte, fmap []byte) []byte {
	img := PatternImage(size, fill)
	copy(img[offset:], fmap)
	return img
}

// PatternImage returns a size-byte image with every byte set to fill.
func PatternImage(size int, fill byte) []byte {
	img := make([]byte, size)
	for i := range img {
		img[i] = fill
	}
	return img
}

// CountingImage returns a size-byte image where byte i holds i mod 256.
func CountingImage(size int) []byte {
	img := make([]byte, size)
	for i := range img {
		img[i] = byte(i)
	}
	return img
}
