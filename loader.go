package mibprofile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/golangsnmp/mibprofile/mib"
)

// Loader returns the compiled node tree of a MIB module.
//
// Implementations return an error wrapping mib.ErrModuleMissing when the
// module cannot be found or compiled.
type Loader interface {
	Load(ctx context.Context, module string) (*mib.Tree, error)
}

// Compiler compiles a MIB module into destDir/<module>.json.
//
// Implementations return an error wrapping mib.ErrModuleMissing when the
// module source cannot be found.
type Compiler interface {
	Compile(ctx context.Context, module, destDir string) error
}

// CacheLoader loads compiled modules from JSON documents named <module>.json
// in Dir. When a document is absent and a Compiler is set, the module is
// compiled into Dir and read back.
type CacheLoader struct {
	Dir      string
	Compiler Compiler
	logger   *slog.Logger
}

// NewCacheLoader returns a CacheLoader. compiler and logger may be nil.
func NewCacheLoader(dir string, compiler Compiler, logger *slog.Logger) *CacheLoader {
	return &CacheLoader{Dir: dir, Compiler: compiler, logger: logger}
}

// Path returns the cache document path of module.
func (l *CacheLoader) Path(module string) string {
	return filepath.Join(l.Dir, module+".json")
}

// Load implements Loader.
func (l *CacheLoader) Load(ctx context.Context, module string) (*mib.Tree, error) {
	path := l.Path(module)
	tree, err := mib.ReadTree(path)
	if err == nil {
		if logEnabled(l.logger, LevelTrace) {
			l.logger.LogAttrs(ctx, LevelTrace, "cache hit",
				slog.String("module", module),
				slog.Int("nodes", tree.Len()))
		}
		return tree, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if l.Compiler == nil {
		return nil, fmt.Errorf("%w: %s has no compiled document", mib.ErrModuleMissing, module)
	}

	if logEnabled(l.logger, slog.LevelDebug) {
		l.logger.LogAttrs(ctx, slog.LevelDebug, "cache miss, compiling",
			slog.String("module", module))
	}
	if err := l.Compiler.Compile(ctx, module, l.Dir); err != nil {
		return nil, err
	}

	tree, err = mib.ReadTree(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s compiled to no document", mib.ErrModuleMissing, module)
	}
	return tree, err
}
