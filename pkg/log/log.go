// Package log provides the small logging seam used throughout the core.
// Components depend on the Logger interface rather than on logrus
// directly, so tests can substitute a no-op implementation.
package log

import "github.com/sirupsen/logrus"

// Logger is the logging surface consumed by the core components.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logrusLogger struct {
	*logrus.Logger
}

// New returns a Logger backed by logrus, formatted for a terminal without
// timestamps (the emulator's own frame clock is the interesting one).
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    false,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return &logrusLogger{l}
}

func (l *logrusLogger) Infof(format string, args ...interface{})  { l.Logger.Infof(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.Logger.Errorf(format, args...) }
func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.Logger.Debugf(format, args...) }

// nullLogger discards everything. Used by tests that construct core
// components in isolation and don't want log noise.
type nullLogger struct{}

// NewNull returns a Logger that discards all output.
func NewNull() Logger { return nullLogger{} }

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
