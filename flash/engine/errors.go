package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotInitialized indicates an operation before a successful Initialize.
	ErrNotInitialized = errors.New("engine: not initialized")
	// ErrTargetSelect indicates the device refused to select the target.
	ErrTargetSelect = errors.New("engine: target selection failed")
	// ErrRead indicates the device returned no readable image.
	ErrRead = errors.New("engine: device read failed")
	// ErrWrite indicates a device write failed.
	ErrWrite = errors.New("engine: device write failed")
)

// VerificationError reports a post-write read-back that does not match the
// intended image outside the skip regions. It signals potential tool or
// hardware corruption and is never retried automatically.
type VerificationError struct {
	// Sections is the changed-section set of the write being verified.
	Sections []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("engine: device content differs from intended image after writing [%s]",
		strings.Join(e.Sections, ","))
}

// CommitError reports a commit that stopped partway through the journal.
// Records before Record were durably applied and verified; Record itself and
// everything after it were not confirmed. The journal retains the
// unconfirmed suffix, but the device may hold partial state: re-Initialize
// and diff against CurrentImage before deciding how to proceed.
type CommitError struct {
	// Applied is the number of records written and verified before the failure.
	Applied int
	// Record is the journal index (FIFO, zero-based) of the failing record.
	Record int
	// Err is the underlying failure.
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("engine: commit stopped at record %d (%d applied): %v",
		e.Record, e.Applied, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
