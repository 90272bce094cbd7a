package mibprofile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Source finds MIB source files by module name.
type Source interface {
	// Find locates a module by name.
	// Returns the file content, its path for diagnostics, or fs.ErrNotExist
	// if not found.
	Find(name string) (io.ReadCloser, string, error)

	// ListModules returns the module names known to this source, sorted.
	ListModules() ([]string, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

// SourceExtensions sets the file extensions a source recognizes.
// The empty string matches files with no extension (e.g., "IF-MIB").
func SourceExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	cfg := sourceConfig{extensions: DefaultExtensions}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// --- Dir Source (single directory) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source over a single directory (no recursion).
func Dir(path string, opts ...SourceOption) (Source, error) {
	if path == "" {
		return nil, ErrNoSource
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return &dirSource{path: path, config: newSourceConfig(opts)}, nil
}

func (s *dirSource) Find(name string) (io.ReadCloser, string, error) {
	for _, ext := range s.config.extensions {
		fullPath := filepath.Join(s.path, name+ext)
		f, err := os.Open(fullPath)
		if err == nil {
			return f, fullPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fullPath, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *dirSource) ListModules() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	extSet := makeExtensionSet(s.config.extensions)
	seen := make(map[string]struct{})
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasValidExtension(entry.Name(), extSet) {
			continue
		}
		name := moduleNameFromPath(entry.Name())
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	index map[string]string // module name -> file path
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction. First match wins for duplicate
// names.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}

	extSet := makeExtensionSet(newSourceConfig(opts).extensions)
	index := make(map[string]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(path, extSet) {
			return nil
		}
		name := moduleNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &treeSource{index: index}, nil
}

func (s *treeSource) Find(name string) (io.ReadCloser, string, error) {
	path, ok := s.index[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}

func (s *treeSource) ListModules() ([]string, error) {
	names := make([]string, 0, len(s.index))
	for name := range s.index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// --- Multi Source ---

type multiSource struct {
	sources []Source
}

// Multi combines sources. Find tries each in order and returns the first
// match.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Find(name string) (io.ReadCloser, string, error) {
	for _, src := range s.sources {
		r, path, err := src.Find(name)
		if err == nil {
			return r, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *multiSource) ListModules() ([]string, error) {
	var names []string
	for _, src := range s.sources {
		n, err := src.ListModules()
		if err != nil {
			return nil, err
		}
		names = append(names, n...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// --- Helpers ---

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}

func moduleNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
