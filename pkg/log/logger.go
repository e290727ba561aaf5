package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Config controls the process-wide logger installed by SetupLogger.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Empty means "info".
	Level string

	// JSON selects JSON lines instead of the human-readable console format.
	JSON bool

	// File, when set, sends records to a size-rotated file instead of Writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Writer is the destination when File is empty. Defaults to os.Stderr.
	Writer io.Writer
}

type zerologProvider struct {
	mu   sync.RWMutex
	root zerolog.Logger
}

func newZerologProvider(root zerolog.Logger) *zerologProvider {
	return &zerologProvider{root: root}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *zerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.root)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.root.With().Str(ComponentKey, name).Logger())
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root = p.root.Level(toZerologLevel(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = newDefaultProvider()
)

func newDefaultProvider() *zerologProvider {
	root := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	routeWarnings(root)
	return newZerologProvider(root)
}

// GetLogger returns the default logger of the installed provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetLevel changes the minimum level of the installed provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}

// SetProvider replaces the process-wide provider, e.g. with a
// TestLoggerProvider in tests.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// SetupLogger installs a zerolog-backed provider built from cfg and routes
// library warnings (errors.Warn) to it. The returned closer releases the
// log file, if any; it is always non-nil.
func SetupLogger(cfg Config) (io.Closer, error) {
	level, err := ToLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		out    io.Writer = cfg.Writer
		closer io.Closer = nopCloser{}
	)
	if out == nil {
		out = os.Stderr
	}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out, closer = rotating, rotating
	}
	if !cfg.JSON && cfg.File == "" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	root := zerolog.New(out).Level(toZerologLevel(level)).With().Timestamp().Logger()
	routeWarnings(root)
	SetProvider(newZerologProvider(root))
	return closer, nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}

// routeWarnings sends errors.Warn output to zl, embedding the structured
// fields of warnings that implement zerolog.LogObjectMarshaler.
func routeWarnings(zl zerolog.Logger) {
	errors.SetZerologWarnFunc(func(w error) {
		ev := zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
