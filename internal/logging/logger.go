// Package logging provides config-driven categorized logging on zap.
// Every category is a named child of one process logger. Until Initialize or
// SetLogger is called, all categories log to a no-op logger so test binaries
// stay silent.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryCompare Category = "compare" // Equivalence checks
	CategoryDiff    Category = "diff"    // Diff construction
	CategoryMatcher Category = "matcher" // Matcher verdicts
	CategoryDecode  Category = "decode"  // Schema validation
	CategoryCLI     Category = "cli"     // outcomecheck commands
	CategoryConfig  Category = "config"  // Config loading
)

// AllCategories lists every known category.
var AllCategories = []Category{
	CategoryCompare,
	CategoryDiff,
	CategoryMatcher,
	CategoryDecode,
	CategoryCLI,
	CategoryConfig,
}

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // console, json
	DebugMode  bool            // false = no logging
	Categories map[string]bool // per-category toggles; missing means enabled
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	opts    Options
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the process logger from opts. With DebugMode off it
// installs a no-op logger.
func Initialize(o Options) error {
	if !o.DebugMode {
		install(zap.NewNop(), o)
		return nil
	}

	level, err := ParseLevel(o.Level)
	if err != nil {
		return err
	}

	var cfg zap.Config
	switch strings.ToLower(o.Format) {
	case "", "console", "text":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return fmt.Errorf("unknown log format %q (valid: console, json)", o.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	install(logger, o)
	return nil
}

// SetLogger installs an existing zap logger as the process logger. Category
// toggles from o still apply; o.DebugMode is implied.
func SetLogger(l *zap.Logger, o Options) {
	if l == nil {
		l = zap.NewNop()
	}
	o.DebugMode = true
	install(l, o)
}

// Reset restores the silent default.
func Reset() {
	install(zap.NewNop(), Options{})
}

func install(l *zap.Logger, o Options) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	opts = o
	loggers = make(map[Category]*zap.Logger)
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// IsDebugMode reports whether logging is switched on at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled reports whether category writes anywhere.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(category)
}

func categoryEnabled(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	enabled, ok := opts.Categories[string(category)]
	return !ok || enabled
}

// Get returns the logger for category. Disabled categories get a no-op logger.
func Get(category Category) *zap.Logger {
	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	if categoryEnabled(category) {
		l = base.Named(string(category))
	} else {
		l = zap.NewNop()
	}
	loggers[category] = l
	return l
}

// Sync flushes the process logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// Convenience accessors, one per category.

func Compare() *zap.Logger { return Get(CategoryCompare) }
func Diff() *zap.Logger    { return Get(CategoryDiff) }
func Matcher() *zap.Logger { return Get(CategoryMatcher) }
func Decode() *zap.Logger  { return Get(CategoryDecode) }
func CLI() *zap.Logger     { return Get(CategoryCLI) }
func Config() *zap.Logger  { return Get(CategoryConfig) }
