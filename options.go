package cssparse

// Options holds the small, fixed set of knobs this package exposes.
// Adapted from config.go's Config (a generic map[string]*cfgVal with
// typed getters/setters): that shape earns nothing here because the
// option set is small and known at compile time, so a concrete struct
// built with the standard functional-options pattern is the more
// idiomatic Go rendering of the same "ambient configuration" concern.
type Options struct {
	maxInputSize    int
	streamChunkSize int
}

// Option mutates an Options value under construction.
type Option func(*Options)

func newOptions(opts ...Option) Options {
	o := Options{
		maxInputSize:    maxInputSize,
		streamChunkSize: 64 * 1024,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxInputSize overrides the default 1,048,575-byte input cap.
// Mostly useful for exercising the input_too_large path in tests
// without allocating a full megabyte.
func WithMaxInputSize(n int) Option {
	return func(o *Options) {
		if n > 0 && n < maxInputSize {
			o.maxInputSize = n
		}
	}
}

// WithStreamChunkSize sets the read buffer size used by
// NewStringFromReader.
func WithStreamChunkSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.streamChunkSize = n
		}
	}
}
