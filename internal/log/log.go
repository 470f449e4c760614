package log

import (
	"os"
	"sync"
	"time"

	charm "github.com/charmbracelet/log"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	logger     *charm.Logger
	loggerOnce sync.Once
)

// initLogger initializes the global logger to write to stderr with timestamps.
func initLogger() {
	loggerOnce.Do(func() {
		logger = charm.NewWithOptions(os.Stderr, charm.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Level:           charm.InfoLevel,
		})
	})
}

func SetLevel(l Level) {
	initLogger()
	switch l {
	case LevelDebug:
		logger.SetLevel(charm.DebugLevel)
	case LevelError:
		logger.SetLevel(charm.ErrorLevel)
	default:
		logger.SetLevel(charm.InfoLevel)
	}
}

func Debug(msg string, kv ...any) {
	initLogger()
	logger.Debug(msg, kv...)
}

func Info(msg string, kv ...any) {
	initLogger()
	logger.Info(msg, kv...)
}

// Error logs msg with err prepended to the key-value list.
func Error(msg string, err error, kv ...any) {
	initLogger()
	logger.Error(msg, append([]any{"err", err}, kv...)...)
}
