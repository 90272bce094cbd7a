// Package compiler turns MIB source files into the compiled JSON documents
// the profile generator reads.
//
// Sources are fetched through a Fetcher, parsed and resolved with wasmib,
// and every definition of the requested module is written as one record of
// <module>.json. Imports that the first pass cannot resolve are fetched and
// the module is resolved again, for a bounded number of rounds.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	wasmib "github.com/lukeod/wasmib/wasmib-go"

	"github.com/golangsnmp/mibprofile"
	"github.com/golangsnmp/mibprofile/mib"
)

// DefaultImportRounds bounds how many times unresolved imports are fetched.
const DefaultImportRounds = 8

// Compiler compiles MIB modules into JSON documents.
type Compiler struct {
	fetcher *Fetcher
	rounds  int
	logger  *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// WithImportRounds sets how many rounds of import fetching are attempted.
func WithImportRounds(n int) Option {
	return func(c *Compiler) { c.rounds = n }
}

// New returns a Compiler reading sources through fetcher.
func New(fetcher *Fetcher, opts ...Option) *Compiler {
	c := &Compiler{fetcher: fetcher, rounds: DefaultImportRounds}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles module and writes destDir/<module>.json.
// A module whose source cannot be found fails with mib.ErrModuleMissing.
func (c *Compiler) Compile(ctx context.Context, module, destDir string) error {
	tree, err := c.Build(ctx, module)
	if err != nil {
		if errors.Is(err, mib.ErrModuleMissing) {
			c.logStatus(ctx, module, "missing")
		}
		return err
	}

	path := filepath.Join(destDir, module+".json")
	if err := mib.WriteTree(path, tree); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	c.logStatus(ctx, module, "compiled")
	return nil
}

// Build compiles module and returns its records in OID tree order.
func (c *Compiler) Build(ctx context.Context, module string) (*mib.Tree, error) {
	root, err := c.fetcher.Fetch(ctx, module)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %w", mib.ErrModuleMissing, module, err)
		}
		return nil, err
	}

	sources := []source{{name: module, data: root}}
	tried := map[string]struct{}{module: {}}

	var model *wasmib.Model
	for round := 0; ; round++ {
		model, sources, err = c.resolve(ctx, sources)
		if err != nil {
			return nil, fmt.Errorf("compiling %s: %w", module, err)
		}
		if round >= c.rounds {
			break
		}

		missing := missingImports(model, tried)
		if len(missing) == 0 {
			break
		}
		added := 0
		for _, name := range missing {
			tried[name] = struct{}{}
			data, err := c.fetcher.Fetch(ctx, name)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					return nil, err
				}
				if logEnabled(c.logger, slog.LevelDebug) {
					c.logger.LogAttrs(ctx, slog.LevelDebug, "import not found",
						slog.String("module", module),
						slog.String("import", name))
				}
				continue
			}
			sources = append(sources, source{name: name, data: data})
			added++
		}
		if added == 0 {
			break
		}
	}

	if !definesModule(model, module) {
		return nil, fmt.Errorf("%w: %s: source does not define the module", mib.ErrModuleMissing, module)
	}
	return records(model, module), nil
}

type source struct {
	name string
	data []byte
}

// resolve parses every source and resolves them together. The first source
// must parse; others that fail are dropped and reported.
func (c *Compiler) resolve(ctx context.Context, sources []source) (*wasmib.Model, []source, error) {
	wc, err := wasmib.NewCompiler(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = wc.Close() }()

	kept := sources[:0:0]
	for i, src := range sources {
		if err := wc.LoadModule(src.data); err != nil {
			if i == 0 {
				return nil, nil, fmt.Errorf("parsing %s: %w", src.name, err)
			}
			if c.logger != nil {
				c.logger.LogAttrs(ctx, slog.LevelWarn, "dropping unparsable import",
					slog.String("import", src.name),
					slog.String("error", err.Error()))
			}
			continue
		}
		kept = append(kept, src)
	}

	model, err := wc.Resolve()
	if err != nil {
		return nil, nil, err
	}
	if logEnabled(c.logger, mibprofile.LevelTrace) {
		imports, types, oids, _, _ := model.UnresolvedCounts()
		c.logger.LogAttrs(ctx, mibprofile.LevelTrace, "resolved",
			slog.Int("sources", len(kept)),
			slog.Int("unresolved_imports", int(imports)),
			slog.Int("unresolved_types", int(types)),
			slog.Int("unresolved_oids", int(oids)))
	}
	return model, kept, nil
}

// missingImports returns the sorted names of imported modules the model
// could not find, excluding those already tried.
func missingImports(model *wasmib.Model, tried map[string]struct{}) []string {
	var names []string
	for _, u := range model.UnresolvedImports() {
		if u.Reason != wasmib.ReasonModuleNotFound {
			continue
		}
		name := model.GetStr(u.FromModule)
		if name == "" {
			continue
		}
		if _, ok := tried[name]; ok {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func definesModule(model *wasmib.Model, module string) bool {
	mod := model.GetModuleByName(module)
	return mod != nil
}

func (c *Compiler) logStatus(ctx context.Context, module, status string) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "compiled module",
		slog.String("module", module),
		slog.String("status", status))
}

func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}
