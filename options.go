package hgt

import (
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	strict bool
	logger logrus.FieldLogger
}

// Option configures how tiles are opened.
type Option func(*options)

// WithStrictHemispheres rejects hemisphere letters other than N/S and
// E/W instead of reading them as south and west.
func WithStrictHemispheres() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger used for debug output while decoding.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := &options{logger: discard}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) parseCoordinates(stem string) (int, int, error) {
	if o.strict {
		return ParseCoordinatesStrict(stem)
	}
	return ParseCoordinates(stem)
}
