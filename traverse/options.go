package traverse

import (
	"github.com/erraggy/schemawalk/parser"
)

// Option configures a traversal.
type Option func(*config)

// config is the normalized form of all options. It is built once per call,
// before the walk starts.
type config struct {
	pre      Hook
	post     Hook
	allKeys  bool
	maxDepth int
	logger   parser.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithPre sets the hook called before a schema's children are visited.
func WithPre(fn Hook) Option {
	return func(c *config) { c.pre = fn }
}

// WithPost sets the hook called after all of a schema's children were visited.
func WithPost(fn Hook) Option {
	return func(c *config) { c.post = fn }
}

// WithCallbacks sets both hooks at once. Nil fields clear the matching slot.
func WithCallbacks(cb Callbacks) Option {
	return func(c *config) {
		c.pre = cb.Pre
		c.post = cb.Post
	}
}

// WithAllKeys is accepted for compatibility with callers that request a
// walk over every object-valued keyword. The keyword sets are currently
// fixed, so the flag does not change which nodes are visited.
func WithAllKeys(enabled bool) Option {
	return func(c *config) { c.allKeys = enabled }
}

// WithMaxDepth limits how deeply nested a schema may be. A node whose depth
// exceeds n aborts the walk with a *schemaerrors.ResourceLimitError.
// Zero, the default, means unlimited. Negative values are rejected by
// Traverse with a *schemaerrors.ConfigError.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithLogger sets a logger that receives debug records for values the walk
// skips (boolean schemas, malformed keyword values) and for limit hits.
func WithLogger(l parser.Logger) Option {
	return func(c *config) { c.logger = l }
}
