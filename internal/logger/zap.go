package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap's SugaredLogger together with its live level and the
// in-memory tail.
type Logger struct {
	*zap.SugaredLogger

	level  zap.AtomicLevel
	buffer *Buffer
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting stdout.
func newConsoleCore(level zapcore.LevelEnabler) zapcore.Core {
	cfg := encoderConfig()
	cfg.TimeKey = ""

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(os.Stdout) // thread-safe writer
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), level)
}

// newFileCore writes full-timestamp lines into a lumberjack-rotated file.
func newFileCore(opts Options, level zapcore.LevelEnabler) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	return zapcore.NewCore(encoder, zapcore.AddSync(rotator), level)
}

// New constructs a sugared zap logger teeing stdout, the optional log file and
// the in-memory buffer.
func New(opts Options) *Logger {
	level := zap.NewAtomicLevelAt(toZapLevel(opts.Level))

	capacity := opts.BufferLines
	if capacity <= 0 {
		capacity = defaultBufferLines
	}
	buf := NewBuffer(capacity)

	cores := []zapcore.Core{newBufferCore(buf, level)}
	if !opts.NoStdout {
		cores = append(cores, newConsoleCore(level))
	}
	if opts.File != "" {
		cores = append(cores, newFileCore(opts, level))
	}

	return &Logger{
		SugaredLogger: zap.New(zapcore.NewTee(cores...)).Sugar(),
		level:         level,
		buffer:        buf,
	}
}

// FromZap wraps an existing zap logger, e.g. an observer in tests.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: z.Sugar(),
		level:         zap.NewAtomicLevelAt(zapcore.DebugLevel),
		buffer:        NewBuffer(defaultBufferLines),
	}
}

// SetDebug switches between debug and info without rebuilding the logger.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
}

// DebugEnabled reports whether debug lines are currently emitted.
func (l *Logger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

// Buffer returns the in-memory tail.
func (l *Logger) Buffer() *Buffer {
	return l.buffer
}
