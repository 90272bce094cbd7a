package mibprofile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golangsnmp/mibprofile/mib"
)

// Extract lists the MIB modules in dir, loads each one and returns its
// profile-relevant nodes.
//
// Modules are visited in name order and nodes keep their document order
// within a module. Modules that fail to load are skipped. Records that are
// invalid, not OBJECT-TYPEs or structural (rows, plain nodes) are dropped.
// OBJECT-TYPEs without a node type are kept as KindUnknown and logged as a
// warning.
//
// A missing or unreadable dir is an error.
func Extract(ctx context.Context, dir string, opts ...Option) ([]mib.Node, error) {
	return extract(ctx, dir, newConfig(opts))
}

// ListModules returns the module names Extract would visit in dir.
func ListModules(dir string, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)
	src, err := Dir(dir, SourceExtensions(cfg.extensions...))
	if err != nil {
		return nil, err
	}
	return src.ListModules()
}

func extract(ctx context.Context, dir string, cfg config) ([]mib.Node, error) {
	logger := componentLogger(cfg.logger, "extract")

	modules, err := ListModules(dir, WithExtensions(cfg.extensions...))
	if err != nil {
		return nil, fmt.Errorf("listing MIB modules: %w", err)
	}

	loader := cfg.loader
	if loader == nil {
		loader = NewCacheLoader(dir, cfg.compiler, componentLogger(cfg.logger, "loader"))
	}

	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(ctx, slog.LevelDebug, "extracting",
			slog.String("dir", dir),
			slog.Int("modules", len(modules)))
	}

	var nodes []mib.Node
	for _, module := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tree, err := loader.Load(ctx, module)
		if err != nil {
			logSkippedModule(ctx, logger, module, err)
			continue
		}

		nodes = appendModuleNodes(ctx, logger, nodes, module, cfg.filter.Apply(module, tree, cfg.segmentFilter))
	}
	return nodes, nil
}

func appendModuleNodes(ctx context.Context, logger *slog.Logger, nodes []mib.Node, module string, tree *mib.Tree) []mib.Node {
	for key, raw := range tree.All() {
		n, err := mib.Classify(module, raw)
		if err != nil {
			if logEnabled(logger, LevelTrace) {
				logger.LogAttrs(ctx, LevelTrace, "skipping record",
					slog.String("module", module),
					slog.String("key", key),
					slog.String("error", err.Error()))
			}
			continue
		}

		switch n.Kind() {
		case mib.KindNonObject, mib.KindMiddle:
			continue
		case mib.KindUnknown:
			if logger != nil {
				logger.LogAttrs(ctx, slog.LevelWarn, "unknown node type",
					slog.String("module", n.Module()),
					slog.String("name", n.Name()),
					slog.String("oid", n.OID()))
			}
		}
		if !n.Readable() {
			continue
		}

		if logEnabled(logger, LevelTrace) {
			logger.LogAttrs(ctx, LevelTrace, "node",
				slog.String("module", module),
				slog.String("name", n.Name()),
				slog.String("oid", n.OID()),
				slog.String("kind", n.Kind().String()))
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func logSkippedModule(ctx context.Context, logger *slog.Logger, module string, err error) {
	if logger == nil {
		return
	}
	level := slog.LevelWarn
	msg := "skipping module"
	if errors.Is(err, mib.ErrModuleMissing) {
		level = slog.LevelInfo
		msg = "module missing"
	}
	logger.LogAttrs(ctx, level, msg,
		slog.String("module", module),
		slog.String("error", err.Error()))
}
