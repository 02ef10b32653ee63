// Package logger builds the zerodha/logf logger used by binaries that
// embed this engine and want persisted diagnostics. pkg/engine.New
// itself only needs a plain logf.Logger value; this package is the
// opinionated construction path for hosts that don't already have
// their own (see pkg/engine.NewWithFileLogging).
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"github.com/zerodha/logf"
)

// LogDirName is the directory under the user's home where
// InitFileLogger writes log files.
const LogDirName = ".orbital-sandbox"

var levelsByName = map[string]logf.Level{
	"debug": logf.DebugLevel,
	"info":  logf.InfoLevel,
	"warn":  logf.WarnLevel,
	"error": logf.ErrorLevel,
	"fatal": logf.FatalLevel,
}

var (
	globalLogger logf.Logger
	once         sync.Once
	logFile      *os.File

	// UserCurrentFunc is swappable so tests can force the current-user
	// lookup InitFileLogger depends on to fail.
	UserCurrentFunc = user.Current
)

func defaultOpts() logf.Opts {
	return logf.Opts{
		EnableCaller:    true,
		TimestampFormat: "15:04:05",
		EnableColor:     false,
		Level:           logf.InfoLevel,
	}
}

// GetDefaultOpts exposes the base options used to build the singleton,
// for callers that want to construct a one-off, non-singleton logger
// with the same shape (see the package tests).
func GetDefaultOpts() logf.Opts {
	return defaultOpts()
}

// InitFileLogger initializes the singleton logger with a file writer at
// ~/.orbital-sandbox/logs/<appName>-<timestamp>.log, in addition to
// stdout, and returns it.
func InitFileLogger(configuredLevel, appName string) (*logf.Logger, error) {
	usr, err := UserCurrentFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	logsDir := filepath.Join(usr.HomeDir, LogDirName, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory '%s': %w", logsDir, err)
	}

	path := filepath.Join(logsDir, fmt.Sprintf("%s-%s.log", appName, time.Now().Format("2006-01-02_15-04-05")))

	lg := GetLogger(configuredLevel, path)
	lg.Info("file logger initialized", "app", appName, "path", path, "level", configuredLevel)
	return lg, nil
}

// GetLogger returns the singleton logger, building it on the first
// call; later calls ignore level and filePath and return the existing
// instance. filePath, when non-empty, adds a file writer alongside
// stdout.
func GetLogger(level string, filePath ...string) *logf.Logger {
	once.Do(func() {
		opts := defaultOpts()
		if lvl, ok := levelsByName[level]; ok {
			opts.Level = lvl
		}

		writers := []io.Writer{os.Stdout}
		if len(filePath) > 0 && filePath[0] != "" {
			f, err := os.OpenFile(filePath[0], os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Printf("[logger] failed to open log file '%s': %v. continuing with stdout only.", filePath[0], err)
			} else {
				logFile = f
				writers = append(writers, f)
			}
		}

		opts.Writer = io.MultiWriter(writers...)
		globalLogger = logf.New(opts)
	})
	return &globalLogger
}

// Reset discards the singleton, closing any open log file. Tests use
// this to force the next GetLogger/InitFileLogger call to rebuild.
func Reset() {
	once = sync.Once{}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	globalLogger = logf.Logger{}
}
