package logger

import (
	"sync"
)

// Log levels accepted in configuration and on the command line.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the process-wide logger.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level;
// later calls return the same instance whatever level they ask for.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// Levels lists the accepted level names.
func Levels() []string {
	return []string{DebugLevel, InfoLevel, WarnLevel, ErrorLevel}
}
