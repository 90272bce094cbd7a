package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// ErrCyclicExtends is returned when a profile extends itself, directly or
// through its bases.
var ErrCyclicExtends = errors.New("cyclic profile extends")

// Resolver reads profile files and expands their "extends" chains.
//
// Relative file names resolve against Root, absolute ones are used as-is.
type Resolver struct {
	Root   string
	logger *slog.Logger
}

// NewResolver returns a Resolver rooted at root. logger may be nil.
func NewResolver(root string, logger *slog.Logger) *Resolver {
	return &Resolver{Root: root, logger: logger}
}

// Path returns the file path a profile name refers to.
func (r *Resolver) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.Root, name)
}

// Read reads and decodes one profile file without expanding it.
func (r *Resolver) Read(name string) (*Document, error) {
	path := r.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return doc, nil
}

// Expand reads a profile and inlines the metrics of every profile it
// extends. Bases are expanded depth-first in listed order and their metrics
// come before the profile's own. The returned document has no extends.
func (r *Resolver) Expand(name string) (*Document, error) {
	return r.expand(name, nil)
}

func (r *Resolver) expand(name string, history []string) (*Document, error) {
	path := filepath.Clean(r.Path(name))
	if slices.Contains(history, path) {
		return nil, fmt.Errorf("%w: %q has already been extended, extendsHistory=%v", ErrCyclicExtends, path, history)
	}
	history = append(slices.Clone(history), path)

	doc, err := r.Read(name)
	if err != nil {
		return nil, err
	}

	var metrics []Metric
	for _, base := range doc.Extends {
		expanded, err := r.expand(base, history)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, expanded.Metrics...)
	}
	metrics = append(metrics, doc.Metrics...)

	if r.logger != nil && r.logger.Enabled(context.Background(), slog.LevelDebug) {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug, "expanded profile",
			slog.String("path", path),
			slog.Int("bases", len(doc.Extends)),
			slog.Int("metrics", len(metrics)))
	}

	return &Document{Metrics: metrics, Extra: doc.Extra}, nil
}
