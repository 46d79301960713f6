// Package engine drives journaled partial writes against a flash device.
//
// An Engine owns one device.Device, one compiled layout, and one journal of
// pending edits. The protocol is: Initialize once, edit sections through
// WriteSection and ImageCopy (each edit appends a change record instead of
// touching hardware), then Commit to replay the records against the device
// in order, verifying each write by reading the whole chip back.
//
// Commit protocol per record:
//  1. Write the record's changed sections to the device
//  2. Read the whole device back
//  3. Compare the read-back against the record's image, skip regions masked
//  4. On mismatch, stop; earlier records stay applied, later ones pending
//
// There is no automatic rollback: a failure at record k leaves records
// 1..k-1 durably on the device. The caller re-Initializes to observe true
// device state. This is deliberate for infrequent, operator-driven firmware
// updates, not high-throughput storage.
//
// NOT thread-safe. One goroutine, one Engine, one physical target.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/device"
	"github.com/joshuapare/flashkit/flash/journal"
	"github.com/joshuapare/flashkit/flash/layout"
	"github.com/joshuapare/flashkit/flash/verify"
)

// Engine is the journaled commit engine over one flash device.
type Engine struct {
	dev device.Device
	log *zap.Logger

	layout  flash.Layout
	whole   flash.Layout
	skip    []verify.SkipRegion
	current flash.Image
	journal journal.Journal
	ready   bool
}

// New creates an Engine over dev.
func New(dev device.Device, opts ...Option) *Engine {
	e := &Engine{
		dev: dev,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize selects target on the device, reads its current content,
// resolves the layout (embedded flash map first, textual description as
// fallback), and resets the journal. It must succeed before any other
// operation; a failure leaves the engine unusable.
func (e *Engine) Initialize(ctx context.Context, target string, opts InitOptions) error {
	e.ready = false

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.dev.SelectTarget(target); err != nil {
		return fmt.Errorf("%w: target %q: %w", ErrTargetSelect, target, err)
	}

	img, err := e.dev.ReadWhole()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	if len(img) == 0 {
		return fmt.Errorf("%w: device returned an empty image", ErrRead)
	}
	size := len(img)

	layoutImage := opts.LayoutImage
	if layoutImage == nil {
		layoutImage = img
	}
	if opts.DisableEmbeddedMap {
		layoutImage = nil
	}
	l, err := layout.Detect(opts.LayoutDesc, size, layoutImage, layout.DetectOptions{
		NameMap: opts.NameMap,
	})
	if err != nil {
		return err
	}

	e.layout = l
	e.whole = layout.Whole(size)
	e.skip = opts.SkipRegions
	e.current = img
	e.journal.Reset()
	e.ready = true

	e.log.Info("engine initialized",
		zap.String("target", target),
		zap.Int("size", size),
		zap.Int("sections", len(l)),
		zap.Int("skip_regions", len(opts.SkipRegions)),
	)
	return nil
}

// Layout returns the compiled layout. Read-only after Initialize.
func (e *Engine) Layout() flash.Layout {
	return e.layout
}

// CurrentImage returns the device content as read at Initialize time, or as
// last confirmed by a commit read-back. It never reflects uncommitted edits.
func (e *Engine) CurrentImage() flash.Image {
	return e.current
}

// LatestPendingImage returns the image the device would hold once every
// journaled edit is committed. With an empty journal it equals
// CurrentImage.
func (e *Engine) LatestPendingImage() flash.Image {
	if img, ok := e.journal.Latest(); ok {
		return img
	}
	return e.current
}

// NeedCommit reports whether uncommitted edits are pending.
func (e *Engine) NeedCommit() bool {
	return !e.journal.Empty()
}

// ReadSection returns the named section's bytes from the latest pending
// image.
func (e *Engine) ReadSection(name string) ([]byte, error) {
	if !e.ready {
		return nil, ErrNotInitialized
	}
	return flash.GetSection(e.LatestPendingImage(), e.layout, name)
}

// ReadSectionFrom returns the named section's bytes from an explicit image
// instead of the pending one.
func (e *Engine) ReadSectionFrom(img flash.Image, name string) ([]byte, error) {
	if !e.ready {
		return nil, ErrNotInitialized
	}
	return flash.GetSection(img, e.layout, name)
}

// WriteSection stages data as the new content of the named section. A
// record is journaled only when the bytes actually differ from the pending
// value; writing identical data is a no-op.
func (e *Engine) WriteSection(name string, data []byte) error {
	if !e.ready {
		return ErrNotInitialized
	}
	img, err := flash.PutSection(e.LatestPendingImage(), e.layout, name, data)
	if err != nil {
		return err
	}
	return e.imageCopy([]string{name}, []string{name}, img)
}

// ImageCopy stages section copies from fromImage into the pending image,
// pairing fromSections with toSections position by position. Pairs whose
// destination already equals the source are omitted; when every pair is
// omitted, nothing is journaled. Pass a nil fromImage to copy within the
// latest pending image. Each pair's sections must have identical byte
// length; cross-section copies are never truncated or padded.
func (e *Engine) ImageCopy(fromSections, toSections []string, fromImage flash.Image) error {
	if !e.ready {
		return ErrNotInitialized
	}
	return e.imageCopy(fromSections, toSections, fromImage)
}

func (e *Engine) imageCopy(fromSections, toSections []string, fromImage flash.Image) error {
	toImage := e.LatestPendingImage()
	if fromImage == nil {
		fromImage = toImage
	}

	n := len(fromSections)
	if len(toSections) < n {
		n = len(toSections)
	}

	changed := toImage
	var changedSections []string
	for i := 0; i < n; i++ {
		from, to := fromSections[i], toSections[i]

		same, err := verify.SectionsEqual(e.layout, fromImage, toImage,
			[]string{from}, []string{to}, e.skip)
		if err != nil {
			return err
		}
		if same {
			continue
		}

		data, err := flash.GetSection(fromImage, e.layout, from)
		if err != nil {
			return err
		}
		if want := e.layout[to].Len(); want != len(data) {
			return fmt.Errorf("copy %q (%d bytes) over %q (%d bytes): %w",
				from, len(data), to, want, flash.ErrLengthMismatch)
		}
		changed, err = flash.PutSection(changed, e.layout, to, data)
		if err != nil {
			return err
		}
		changedSections = append(changedSections, to)
	}

	if len(changedSections) == 0 {
		return nil
	}
	e.journal.Append(changedSections, changed)
	e.log.Debug("edit journaled",
		zap.Strings("sections", changedSections),
		zap.Int("pending_records", e.journal.Len()),
	)
	return nil
}

// Commit replays the journal against the device in FIFO order. Every record
// is written, read back, and verified before the next one starts; a fully
// successful run leaves the journal empty. On failure a *CommitError
// reports how far the commit got.
func (e *Engine) Commit(ctx context.Context) error {
	if !e.ready {
		return ErrNotInitialized
	}

	records := e.journal.Records()
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			e.journal.DropFirst(i)
			return &CommitError{Applied: i, Record: i, Err: err}
		}
		if err := e.applyAndVerify(rec.Sections, e.layout, rec.Image); err != nil {
			e.journal.DropFirst(i)
			return &CommitError{Applied: i, Record: i, Err: err}
		}
		e.log.Info("record committed",
			zap.Int("record", i),
			zap.Strings("sections", rec.Sections),
		)
	}

	e.journal.Reset()
	return nil
}

// CommitWholeImage writes img to the device as a single whole-image
// section, bypassing the journal, and verifies it with the same masked
// read-back as Commit. Pending journal records are unaffected.
func (e *Engine) CommitWholeImage(ctx context.Context, img flash.Image) error {
	if !e.ready {
		return ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(e.whole) != 1 {
		return fmt.Errorf("engine: whole-image layout has %d sections, want 1", len(e.whole))
	}
	if len(img) != len(e.current) {
		return fmt.Errorf("whole image is %d bytes, device holds %d: %w",
			len(img), len(e.current), flash.ErrLengthMismatch)
	}
	return e.applyAndVerify([]string{layout.WholeImageSection}, e.whole, img)
}

// Revert discards every pending edit. The device is not touched.
func (e *Engine) Revert() {
	discarded := e.journal.Len()
	e.journal.Reset()
	e.log.Info("pending edits reverted", zap.Int("discarded_records", discarded))
}

// applyAndVerify performs one write-then-verify step. The read-back becomes
// the new current image whether or not verification passes, so the caller
// always ends up with the device's observed truth.
func (e *Engine) applyAndVerify(sections []string, l flash.Layout, intended flash.Image) error {
	if err := e.dev.WritePartial(intended, l, sections); err != nil {
		return fmt.Errorf("%w: sections %v: %w", ErrWrite, sections, err)
	}

	readBack, err := e.dev.ReadWhole()
	if err != nil {
		return fmt.Errorf("%w: post-write read-back: %w", ErrRead, err)
	}
	e.current = readBack

	same, err := verify.WholeImagesEqual(e.layout, readBack, intended, e.skip)
	if err != nil {
		return err
	}
	if !same {
		return &VerificationError{Sections: sections}
	}
	return nil
}
