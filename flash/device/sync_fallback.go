//go:build !linux && !freebsd

package device

import "os"

// datasync flushes file data to stable storage using the portable fsync.
func datasync(f *os.File) error {
	return f.Sync()
}
