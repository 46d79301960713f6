package device

import (
	"fmt"

	"github.com/joshuapare/flashkit/flash"
)

// MemDevice is an in-memory Device with one or more named targets. It backs
// package tests and doubles as a scratch device for dry runs. Beyond plain
// storage it records write invocations and can inject faults or post-write
// corruption, so commit protocols can be exercised without hardware.
//
// NOT thread-safe, matching the one-caller-per-device contract.
type MemDevice struct {
	targets map[string][]byte
	current string

	// SelectErr, ReadErr, and WriteErr, when set, are returned by the
	// corresponding operation instead of performing it.
	SelectErr error
	ReadErr   error
	WriteErr  error

	// CorruptAfterWrite, when set, is applied to the target's bytes after
	// every successful write. It simulates parts that flip bytes on their
	// own (volatile counters, failing cells).
	CorruptAfterWrite func(data []byte)

	// Writes records every WritePartial invocation in order.
	Writes []WriteCall
}

// WriteCall captures one WritePartial invocation.
type WriteCall struct {
	Sections []string
	Whole    bool
}

// NewMem creates a device with a single target holding data. The slice is
// used directly; tests may inspect it after writes.
func NewMem(target string, data []byte) *MemDevice {
	return &MemDevice{
		targets: map[string][]byte{target: data},
		current: target,
	}
}

// AddTarget registers another named target.
func (d *MemDevice) AddTarget(name string, data []byte) {
	d.targets[name] = data
}

// Bytes exposes the selected target's backing storage.
func (d *MemDevice) Bytes() []byte {
	return d.targets[d.current]
}

// Size implements Device.
func (d *MemDevice) Size() (int, error) {
	return len(d.targets[d.current]), nil
}

// SelectTarget implements Device.
func (d *MemDevice) SelectTarget(name string) error {
	if d.SelectErr != nil {
		return d.SelectErr
	}
	if _, ok := d.targets[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownTarget)
	}
	d.current = name
	return nil
}

// ReadWhole implements Device.
func (d *MemDevice) ReadWhole() (flash.Image, error) {
	if d.ReadErr != nil {
		return nil, d.ReadErr
	}
	return flash.Image(d.targets[d.current]).Clone(), nil
}

// WritePartial implements Device.
func (d *MemDevice) WritePartial(img flash.Image, l flash.Layout, sections []string) error {
	if d.WriteErr != nil {
		return d.WriteErr
	}
	store := d.targets[d.current]

	if len(sections) == 0 && len(l) == 0 {
		if len(img) < len(store) {
			return fmt.Errorf("%d of %d bytes: %w", len(img), len(store), ErrShortImage)
		}
		copy(store, img[:len(store)])
		d.Writes = append(d.Writes, WriteCall{Whole: true})
	} else {
		for _, name := range sections {
			data, err := flash.GetSection(img, l, name)
			if err != nil {
				return err
			}
			copy(store[l[name].Start:], data)
		}
		call := WriteCall{Sections: make([]string, len(sections))}
		copy(call.Sections, sections)
		d.Writes = append(d.Writes, call)
	}

	if d.CorruptAfterWrite != nil {
		d.CorruptAfterWrite(store)
	}
	return nil
}
