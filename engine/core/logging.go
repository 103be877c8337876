package core

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once

type logger struct {
	*log.Logger
	// rotating file output, nil when logging to stderr only
	file *lumberjack.Logger
}

var singleton *logger

// LogLevel is the minimum severity a message needs to be printed.
type LogLevel log.Level

const (
	LogLevelDebug = LogLevel(log.DebugLevel)
	LogLevelInfo  = LogLevel(log.InfoLevel)
	LogLevelWarn  = LogLevel(log.WarnLevel)
	LogLevelError = LogLevel(log.ErrorLevel)
	LogLevelFatal = LogLevel(log.FatalLevel)
)

func (l LogLevel) String() string {
	return log.Level(l).String()
}

// LogConfig describes where log lines go. An empty File keeps output on stderr.
type LogConfig struct {
	Level      LogLevel
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultLogConfig logs info and above to stderr only.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      LogLevelInfo,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportCaller:    true,
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "Lumen 🔦 ",
				})
				l.SetLevel(log.InfoLevel)
				singleton = &logger{Logger: l}
			})
	}
	return singleton
}

// ParseLogLevel accepts debug, info, warn, error and fatal.
func ParseLogLevel(level string) (LogLevel, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return LogLevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return LogLevel(lvl), nil
}

func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(log.Level(level))
}

func GetLogLevel() LogLevel {
	return LogLevel(getLogger().GetLevel())
}

/**
 * @brief Applies cfg to the engine logger. When a file is configured, lines
 * are written to stderr and to a size-rotated file.
 */
func InitializeLogging(cfg LogConfig) error {
	l := getLogger()
	if err := closeLogFile(l); err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		out = io.MultiWriter(os.Stderr, l.file)
	}
	l.SetOutput(out)
	l.SetLevel(log.Level(cfg.Level))
	return nil
}

// ShutdownLogging closes the log file, if any, and goes back to stderr.
func ShutdownLogging() error {
	l := getLogger()
	l.SetOutput(os.Stderr)
	return closeLogFile(l)
}

func closeLogFile(l *logger) error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
