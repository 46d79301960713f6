package device

import (
	"fmt"
	"os"

	"github.com/joshuapare/flashkit/flash"
)

// FileDevice operates on a firmware image file in place of real hardware.
// Partial writes patch only the named sections' byte ranges, then flush so
// the file survives a host crash the same way a chip write would.
//
// A FileDevice has a single implicit target; SelectTarget accepts any name.
type FileDevice struct {
	path string
}

// NewFile creates a device over the image file at path. The file must
// already exist with its final size; flash parts do not grow.
func NewFile(path string) (*FileDevice, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("device: %s is a directory", path)
	}
	return &FileDevice{path: path}, nil
}

// Path returns the backing file path.
func (d *FileDevice) Path() string {
	return d.path
}

// Size implements Device.
func (d *FileDevice) Size() (int, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return 0, fmt.Errorf("device: %w", err)
	}
	return int(info.Size()), nil
}

// SelectTarget implements Device. A file has no selectable sub-targets, so
// every name maps to the file itself.
func (d *FileDevice) SelectTarget(string) error {
	return nil
}

// ReadWhole implements Device.
func (d *FileDevice) ReadWhole() (flash.Image, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	return flash.Image(data), nil
}

// WritePartial implements Device.
func (d *FileDevice) WritePartial(img flash.Image, l flash.Layout, sections []string) error {
	f, err := os.OpenFile(d.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("device: %w", err)
	}
	defer f.Close()

	if len(sections) == 0 && len(l) == 0 {
		if _, err := f.WriteAt(img, 0); err != nil {
			return fmt.Errorf("device: write whole image: %w", err)
		}
	} else {
		for _, name := range sections {
			data, err := flash.GetSection(img, l, name)
			if err != nil {
				return err
			}
			if _, err := f.WriteAt(data, int64(l[name].Start)); err != nil {
				return fmt.Errorf("device: write section %q: %w", name, err)
			}
		}
	}

	if err := datasync(f); err != nil {
		return fmt.Errorf("device: sync: %w", err)
	}
	return nil
}
