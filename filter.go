package mibprofile

import (
	"errors"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/mibprofile/mib"
)

// Filter restricts extraction to chosen subtrees of chosen modules.
//
// It is read from YAML mapping module names to root node names:
//
//	RFC1213-MIB:
//	  - system
//	  - interfaces
//	  - ip
//
// Modules without an entry are kept whole.
type Filter struct {
	roots *orderedmap.OrderedMap[string, []string]
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{roots: orderedmap.New[string, []string]()}
}

// Set replaces the roots configured for module.
func (f *Filter) Set(module string, roots ...string) {
	f.roots.Set(module, roots)
}

// Roots returns the roots configured for module and whether the module has
// an entry at all.
func (f *Filter) Roots(module string) ([]string, bool) {
	if f == nil || f.roots == nil {
		return nil, false
	}
	return f.roots.Get(module)
}

// Modules returns the filtered module names in document order.
func (f *Filter) Modules() []string {
	if f == nil || f.roots == nil {
		return nil
	}
	names := make([]string, 0, f.roots.Len())
	for pair := f.roots.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// UnmarshalYAML decodes the module mapping, keeping document order.
func (f *Filter) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: filter must map MIB names to lists of node names", value.Line)
	}
	f.roots = orderedmap.New[string, []string](len(value.Content) / 2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var roots []string
		if err := val.Decode(&roots); err != nil {
			return fmt.Errorf("filter entry %q: %w", key.Value, err)
		}
		f.roots.Set(key.Value, roots)
	}
	return nil
}

// ParseFilter decodes a filter document. An empty document yields an empty
// filter.
func ParseFilter(r io.Reader) (*Filter, error) {
	f := NewFilter()
	if err := yaml.NewDecoder(r).Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f, nil
}

// LoadFilter reads a filter file.
func LoadFilter(path string) (*Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	f, err := ParseFilter(file)
	if err != nil {
		return nil, fmt.Errorf("parsing filter %s: %w", path, err)
	}
	return f, nil
}

// Apply returns the part of tree the filter keeps for module.
//
// For every configured root present in the tree, each node whose OID
// contains the root's OID is kept. The result is the union over roots, in
// root order then tree order. Nodes without an OID are dropped. A module
// without an entry is returned unchanged.
//
// With segment set, a node matches only when the root's OID is an arc-wise
// prefix of the node's OID.
func (f *Filter) Apply(module string, tree *mib.Tree, segment bool) *mib.Tree {
	roots, ok := f.Roots(module)
	if !ok {
		return tree
	}

	match := mib.ContainsOID
	if segment {
		match = mib.HasOIDPrefix
	}

	kept := mib.NewTree()
	for _, rootName := range roots {
		root, ok := tree.Get(rootName)
		if !ok || root.OID == "" {
			continue
		}
		for name, node := range tree.All() {
			if node.OID != "" && match(node.OID, root.OID) {
				kept.Add(name, node)
			}
		}
	}
	return kept
}
