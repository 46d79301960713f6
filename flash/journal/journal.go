// Package journal accumulates pending section edits as an ordered,
// append-only sequence of change records. Each record carries the set of
// sections an edit changed together with the full image that resulted, so
// replaying the records in order against a device reproduces every
// intermediate state.
package journal

import (
	"sort"

	"github.com/joshuapare/flashkit/flash"
)

// Record is one pending edit: the sections it changed and the full image
// that results once it is applied. Records are immutable after Append.
type Record struct {
	Sections []string
	Image    flash.Image
}

// Journal is the ordered list of records awaiting commit.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Journal struct {
	records []Record
}

// Append adds a record. The section list is sorted and copied, so callers
// may keep mutating their slice afterwards.
func (j *Journal) Append(sections []string, img flash.Image) {
	secs := make([]string, len(sections))
	copy(secs, sections)
	sort.Strings(secs)
	j.records = append(j.records, Record{Sections: secs, Image: img})
}

// Len returns the number of pending records.
func (j *Journal) Len() int {
	return len(j.records)
}

// Empty reports whether no records are pending.
func (j *Journal) Empty() bool {
	return len(j.records) == 0
}

// Latest returns the most recent record's image and true, or nil and false
// when the journal is empty.
func (j *Journal) Latest() (flash.Image, bool) {
	if len(j.records) == 0 {
		return nil, false
	}
	return j.records[len(j.records)-1].Image, true
}

// Records returns the pending records in FIFO order. The slice is a copy;
// the records themselves are shared and must not be modified.
func (j *Journal) Records() []Record {
	out := make([]Record, len(j.records))
	copy(out, j.records)
	return out
}

// DropFirst removes the n oldest records. Used by commit to retain only the
// unapplied suffix when a mid-journal failure occurs.
func (j *Journal) DropFirst(n int) {
	if n >= len(j.records) {
		j.records = nil
		return
	}
	j.records = j.records[n:]
}

// Reset discards every pending record.
func (j *Journal) Reset() {
	j.records = nil
}
