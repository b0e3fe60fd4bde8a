package xlog

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

var _ pebble.Logger = (*PebbleXLogger)(nil)

type PebbleXLogger struct {
	logger XLogger
}

func (l *PebbleXLogger) Infof(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *PebbleXLogger) Errorf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Error(errors.New(fmt.Sprintf(format, args...)), "pebble error")
}

// Fatalf never returns. The panic is left to the caller's recover.
func (l *PebbleXLogger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l != nil && l.logger != nil {
		l.logger.Error(errors.New(msg), "pebble fatal")
		_ = l.logger.Sync()
	}
	panic("[xlog] pebble fatal: " + msg)
}

func NewPebbleXLogger(logger XLogger) *PebbleXLogger {
	if logger == nil {
		return &PebbleXLogger{}
	}
	return &PebbleXLogger{
		logger: logger.Named("Pebble"),
	}
}
