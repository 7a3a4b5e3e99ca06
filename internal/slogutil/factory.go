package slogutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"lumina/internal/config"
)

// LoggerFactory creates loggers for the server and CLI from the logging config.
// Precedence for the level: CLI flag > config > default (info).
type LoggerFactory struct {
	root     string
	config   *config.Config
	cliLevel *slog.Level // nil means no CLI override
	stderr   io.Writer

	mu      sync.Mutex
	base    *slog.Logger
	closers []io.Closer
}

// NewLoggerFactory creates a new logger factory.
// cliLevel is nil when no CLI override was specified.
func NewLoggerFactory(root string, cfg *config.Config, cliLevel *slog.Level) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		root:     root,
		config:   cfg,
		cliLevel: cliLevel,
		stderr:   os.Stderr,
	}
}

// SetStderr redirects console output, mainly for tests.
func (f *LoggerFactory) SetStderr(w io.Writer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stderr = w
}

// Logger returns a logger tagged with the given component.
// All components share one underlying sink.
func (f *LoggerFactory) Logger(component string) *slog.Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.base == nil {
		f.base = f.build()
	}
	if component == "" {
		return f.base
	}
	return f.base.With("component", component)
}

// LogPath resolves the configured log file. Relative paths live under
// <root>/.lumina. Empty means stderr.
func (f *LoggerFactory) LogPath() string {
	file := f.config.Logging.File
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(f.root, config.DirName, file)
}

func (f *LoggerFactory) build() *slog.Logger {
	level := f.effectiveLevel()
	format := Format(f.config.Logging.Format)

	path := f.LogPath()
	if path == "" {
		return NewFormatLogger(f.stderr, level, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return f.fallback(level, format, path, err)
	}

	logger, closer, err := NewFileLoggerWithRotation(path, level, format, f.config.Logging.MaxSize, f.config.Logging.MaxBackups)
	if err != nil {
		return f.fallback(level, format, path, err)
	}

	f.closers = append(f.closers, closer)
	return logger
}

func (f *LoggerFactory) fallback(level slog.Level, format Format, path string, err error) *slog.Logger {
	logger := NewFormatLogger(f.stderr, level, format)
	logger.Warn("Cannot open log file, logging to stderr", "path", path, "error", err.Error())
	return logger
}

// effectiveLevel returns the level to log at.
func (f *LoggerFactory) effectiveLevel() slog.Level {
	if f.cliLevel != nil {
		return *f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelInfo
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	f.base = nil
	return firstErr
}
