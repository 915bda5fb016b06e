package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Output formats accepted by SetupLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	providerMu sync.RWMutex
	// Libraries stay quiet until a binary calls SetupLogger.
	current Logger = NewZerologLogger(
		zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
	)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return current
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the process-wide logger. Passing nil is a no-op.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	providerMu.Lock()
	defer providerMu.Unlock()
	current = l
}

// SetupLogger configures the process-wide logger.
//
// format "json" emits slog JSON records in Cloud Logging layout with
// cockroachdb stack traces; format "console" emits human-readable zerolog
// output. Library warnings raised through errors.Warn are routed to the new
// logger as well.
func SetupLogger(w io.Writer, level, format string) error {
	lvl, err := ToLogLevel(level)
	if err != nil {
		return err
	}

	var logger Logger
	switch strings.ToLower(format) {
	case FormatJSON:
		handler := slog.NewJSONHandler(w, cloudLoggingOptions(lvl))
		sl := slog.New(WrapErrorHandler(handler))
		slog.SetDefault(sl)
		logger = NewSlogLogger(sl)
	case FormatConsole:
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			Level(toZerologLevel(Level(lvl))).
			With().Timestamp().Logger()
		logger = NewZerologLogger(zl)
	default:
		return gdregErrors.NewValidationError("log_format", "must be one of json, console", format)
	}

	SetLogger(logger)
	gdregErrors.SetZerologWarnFunc(func(warning error) {
		GetLoggerWithName("warnings").Warn(warning.Error(), "warning", warning)
	})
	return nil
}

func cloudLoggingOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
}

// ToLogLevel parses "debug", "info", "warn" or "error".
func ToLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, gdregErrors.NewValidationError("log_level", fmt.Sprintf("invalid log level %q", level), level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
