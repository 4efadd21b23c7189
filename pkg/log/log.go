package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing text records to stdout at info level.
func New() Logger {
	return NewWithOutput(os.Stdout, "info")
}

// NewWithOutput returns a Logger writing to w at the named level
// ("debug", "info", "warn", "error"). An unknown level falls back to info.
func NewWithOutput(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.l.Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

func (l *logger) Fatal(str string) {
	l.l.Fatal(str)
}
