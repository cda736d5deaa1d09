package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Options controls where log lines go.
type Options struct {
	Level string

	// File enables a rotating log file next to stdout when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// BufferLines is the capacity of the in-memory tail served to the dashboard.
	BufferLines int

	// NoStdout drops the console sink, for programs that own the terminal.
	NoStdout bool
}

const defaultBufferLines = 500

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided options.
// The first call initializes the logger; subsequent calls ignore the options
// and return the already initialized instance.
func Get(opts Options) *Logger {
	once.Do(func() {
		globalLogger = New(opts)
	})
	return globalLogger
}
