// Package logging defines the structured logging interface used
// throughout matchrouter, backed by logrus, mirroring the small
// Logger/DefaultLog split used elsewhere in the ecosystem so callers
// can plug in their own logger without taking a direct logrus
// dependency.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger is the minimal structured logger the router depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLog adapts a *logrus.Logger to the Logger interface.
type DefaultLog struct {
	*logrus.Logger
}

// New returns a DefaultLog wrapping a fresh logrus.Logger configured
// with a text formatter, suitable for passing to the router through
// its WithLogger option.
func New() *DefaultLog {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &DefaultLog{Logger: l}
}

func (d *DefaultLog) Debugf(format string, args ...any) { d.Logger.Debugf(format, args...) }
func (d *DefaultLog) Infof(format string, args ...any)  { d.Logger.Infof(format, args...) }
func (d *DefaultLog) Warnf(format string, args ...any)  { d.Logger.Warnf(format, args...) }
func (d *DefaultLog) Errorf(format string, args ...any) { d.Logger.Errorf(format, args...) }

// noop discards every log entry; it backs the router when no Logger is
// configured via Options.
type noop struct{}

func (noop) Debugf(string, ...any) {}
func (noop) Infof(string, ...any)  {}
func (noop) Warnf(string, ...any)  {}
func (noop) Errorf(string, ...any) {}

// Noop returns a Logger that discards everything it is given.
func Noop() Logger { return noop{} }
