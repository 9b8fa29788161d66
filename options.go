package taggit

import (
	"github.com/sirupsen/logrus"

	"github.com/sawshep/taggit/internal/logger"
)

// OpenOptions configures an Archive.
type OpenOptions struct {
	Logger *logrus.Entry
}

// Option is a functional option for configuring Open.
type Option func(*OpenOptions)

func defaultOptions() *OpenOptions {
	return &OpenOptions{
		Logger: logger.GetLogger("archive"),
	}
}

// WithLogger sets the logger used for archive diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(o *OpenOptions) {
		if log != nil {
			o.Logger = log
		}
	}
}
