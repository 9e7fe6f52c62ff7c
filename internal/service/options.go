package service

import (
	"log/slog"

	"github.com/teensteam/namecup/internal/bracket"
)

type options struct {
	logger *slog.Logger
	intn   bracket.IntN
}

// Option configures a service. Options a service has no use for are ignored.
type Option func(*options)

// WithRandom replaces the shuffle's random source.
func WithRandom(intn bracket.IntN) Option {
	return func(o *options) { o.intn = intn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
