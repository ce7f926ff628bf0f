// Package logrus adapts logrus to diskcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/diskcache"
)

var _ diskcache.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New wraps l with component=diskcache. A nil l uses the standard logger.
func New(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return Logger{E: l.WithField("component", "diskcache")}
}

func (l Logger) Debug(msg string, f diskcache.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f diskcache.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f diskcache.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f diskcache.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f diskcache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	// logrus renders the "error" key specially; map err onto it.
	lf := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			k = logrus.ErrorKey
		}
		lf[k] = v
	}
	return l.E.WithFields(lf)
}
