package bloom

import "github.com/datatrails/go-datatrails-common/logger"

// Options holds the settings applied by Option functions.
type Options struct {
	Log logger.Logger
}

// Option configures a Filter.
type Option func(*Options)

// WithLogger sets the logger used for debug output. Filters log nothing on the
// Add and Contains paths.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}

func newOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) debugf(format string, args ...any) {
	if o.Log == nil {
		return
	}
	o.Log.Debugf(format, args...)
}
