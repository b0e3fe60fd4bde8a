package xlog

import (
	"bytes"
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

func (lvl LogLevel) zapLevel() zapcore.Level {
	switch lvl {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
	}
	return zapcore.DebugLevel
}

func (lvl LogLevel) String() string {
	return string(lvl)
}

type LogEncoderType uint8

const (
	JSON LogEncoderType = iota
	PlainText
	_encMax
)

type LogOutWriterType uint8

const (
	StdOut LogOutWriterType = iota
	testMemAsOut
	_writerMax
)

const coreKeyIgnored = ""

// memWriteSyncer keeps the logs in memory, only for tests.
type memWriteSyncer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (ws *memWriteSyncer) Write(p []byte) (int, error) {
	ws.lock.Lock()
	defer ws.lock.Unlock()
	return ws.buf.Write(p)
}

func (ws *memWriteSyncer) Sync() error { return nil }

func (ws *memWriteSyncer) String() string {
	ws.lock.Lock()
	defer ws.lock.Unlock()
	return ws.buf.String()
}

func (ws *memWriteSyncer) Reset() {
	ws.lock.Lock()
	defer ws.lock.Unlock()
	ws.buf.Reset()
}

var (
	testMemWriter = &memWriteSyncer{}
	encoderMap    = map[LogEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
		JSON:      zapcore.NewJSONEncoder,
		PlainText: zapcore.NewConsoleEncoder,
	}
)

func getEncoderByType(typ LogEncoderType) func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	enc, ok := encoderMap[typ]
	if !ok {
		return zapcore.NewJSONEncoder
	}
	return enc
}

func getOutWriterByType(typ LogOutWriterType) (zapcore.WriteSyncer, func() error) {
	switch typ {
	case StdOut:
		ws := &zapcore.BufferedWriteSyncer{WS: os.Stdout, Size: 512 * 1024, FlushInterval: 30 * time.Second}
		return ws, ws.Stop
	case testMemAsOut:
		return testMemWriter, nil
	default:
	}
	return zapcore.Lock(os.Stdout), nil
}

type xLogCore interface {
	Build(
		lvlEnabler zapcore.LevelEnabler,
		encoder LogEncoderType,
		writer LogOutWriterType,
		lvlEnc zapcore.LevelEncoder,
		tsEnc zapcore.TimeEncoder,
	) (core zapcore.Core, stop func() error, err error)
}

type XLogger interface {
	IncreaseLogLevel(level zapcore.Level)
	Level() zapcore.Level
	Sync() error

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)

	DebugContext(ctx context.Context, msg string, fields ...zap.Field)
	InfoContext(ctx context.Context, msg string, fields ...zap.Field)
	ErrorContext(ctx context.Context, err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)

	// Named derives a component logger sharing the same core.
	Named(component string) XLogger

	zap() *zap.Logger
}
