// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var root = newRoot()

// Config controls verbosity and the optional log file.
type Config struct {
	// Verbosity 0 logs info and above, 1 adds debug, 2 or more adds trace.
	Verbosity int
	// File, when set, receives a copy of every log line and is rotated by size.
	File string
}

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Init applies cfg to the shared logger.
func Init(cfg Config) {
	switch {
	case cfg.Verbosity >= 2:
		root.SetLevel(logrus.TraceLevel)
	case cfg.Verbosity == 1:
		root.SetLevel(logrus.DebugLevel)
	default:
		root.SetLevel(logrus.InfoLevel)
	}

	if cfg.File == "" {
		root.SetOutput(os.Stderr)
		return
	}

	root.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}))
}

// GetLogger returns a logger whose lines carry the given prefix.
func GetLogger(prefix string) *logrus.Entry {
	return root.WithField("prefix", prefix)
}

// Level returns the current level of the shared logger.
func Level() logrus.Level {
	return root.GetLevel()
}
