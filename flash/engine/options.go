package engine

import (
	"go.uber.org/zap"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/verify"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a structured logger. The default engine is silent.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// InitOptions controls Initialize.
type InitOptions struct {
	// LayoutDesc is the textual layout description compiled against the
	// device size when no embedded flash map is used. See the layout
	// package for the syntax.
	LayoutDesc string

	// LayoutImage optionally supplies the image whose embedded flash map
	// describes the layout. When nil, the freshly read device content is
	// searched instead.
	LayoutImage flash.Image

	// DisableEmbeddedMap forces compilation from LayoutDesc even when an
	// image with a flash map is at hand. Use it when the map in flash is
	// not trusted.
	DisableEmbeddedMap bool

	// NameMap renames flash map areas, see layout.DetectOptions.
	NameMap map[string]string

	// SkipRegions lists volatile byte ranges excluded from every
	// verification comparison.
	SkipRegions []verify.SkipRegion
}
