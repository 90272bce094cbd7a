// Package mibprofile generates SNMP monitoring profiles from MIB modules.
//
// A profile lists the scalars and tables a monitoring agent polls. Generate
// reads the compiled form of every MIB in a directory, classifies each
// OBJECT-TYPE and folds the result into profile metrics. Update compares a
// freshly generated profile against a published one and returns only the
// metrics the published profile does not cover yet.
//
// Example:
//
//	metrics, err := mibprofile.Generate(ctx, "./mibs",
//	    mibprofile.WithLogger(slog.Default()),
//	)
package mibprofile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golangsnmp/mibprofile/profile"
)

// ErrNoSource is returned when no MIB directory is given.
var ErrNoSource = errors.New("no MIB directory provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-record logging (classified nodes, filter matches).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// DefaultExtensions are the MIB source file extensions listed by Generate.
var DefaultExtensions = []string{".my"}

// Option configures Extract, Generate and Update.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	loader        Loader
	compiler      Compiler
	filter        *Filter
	extensions    []string
	segmentFilter bool
	profilesRoot  string
}

func newConfig(opts []Option) config {
	cfg := config{
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithLoader replaces the default JSON cache loader.
func WithLoader(loader Loader) Option {
	return func(c *config) { c.loader = loader }
}

// WithCompiler sets the compiler the default loader falls back to when a
// module has no cached JSON document. Ignored when WithLoader is used.
func WithCompiler(compiler Compiler) Option {
	return func(c *config) { c.compiler = compiler }
}

// WithFilter restricts extraction to the subtrees named by f.
func WithFilter(f *Filter) Option {
	return func(c *config) { c.filter = f }
}

// WithExtensions sets the MIB source file extensions to list.
func WithExtensions(exts ...string) Option {
	return func(c *config) { c.extensions = exts }
}

// WithSegmentFilter makes the filter match whole OID arcs instead of
// substrings, so a root 1.3.6.1.2.1.2 no longer matches 1.3.6.1.2.1.20.
func WithSegmentFilter(enabled bool) Option {
	return func(c *config) { c.segmentFilter = enabled }
}

// WithProfilesRoot sets the directory relative profile names resolve
// against in Update.
func WithProfilesRoot(root string) Option {
	return func(c *config) { c.profilesRoot = root }
}

// Generate builds profile metrics from the MIB modules in dir.
func Generate(ctx context.Context, dir string, opts ...Option) ([]profile.Metric, error) {
	cfg := newConfig(opts)
	nodes, err := extract(ctx, dir, cfg)
	if err != nil {
		return nil, err
	}

	metrics := profile.Assemble(nodes)
	if logEnabled(cfg.logger, slog.LevelInfo) {
		cfg.logger.LogAttrs(ctx, slog.LevelInfo, "generated profile",
			slog.Int("nodes", len(nodes)),
			slog.Int("metrics", len(metrics)))
	}
	return metrics, nil
}

// Update returns the metrics of the profile newName whose OIDs are not
// covered by the profile oldName. oldName is expanded through its extends
// chain first; newName is read as-is.
func Update(ctx context.Context, oldName, newName string, opts ...Option) ([]profile.Metric, error) {
	cfg := newConfig(opts)
	r := profile.NewResolver(cfg.profilesRoot, componentLogger(cfg.logger, "profile"))

	old, err := r.Expand(oldName)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", oldName, err)
	}
	next, err := r.Read(newName)
	if err != nil {
		return nil, err
	}

	added := profile.Diff(old, next.Metrics)
	if logEnabled(cfg.logger, slog.LevelInfo) {
		cfg.logger.LogAttrs(ctx, slog.LevelInfo, "compared profiles",
			slog.Int("old", len(old.Metrics)),
			slog.Int("new", len(next.Metrics)),
			slog.Int("added", len(added)))
	}
	return added, nil
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}
