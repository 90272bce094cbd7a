package mib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrModuleMissing is returned when a module's compiled tree is neither
// cached nor obtainable by compilation.
var ErrModuleMissing = errors.New("MIB module missing")

// Tree is the compiled JSON document of one MIB module: node name to raw
// record, in document order.
type Tree struct {
	nodes *orderedmap.OrderedMap[string, RawNode]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: orderedmap.New[string, RawNode]()}
}

// Add appends a record under name. Re-adding a name replaces the record
// and keeps its original position.
func (t *Tree) Add(name string, raw RawNode) {
	if t.nodes == nil {
		t.nodes = orderedmap.New[string, RawNode]()
	}
	t.nodes.Set(name, raw)
}

// Get returns the record stored under name.
func (t *Tree) Get(name string) (RawNode, bool) {
	if t == nil || t.nodes == nil {
		return RawNode{}, false
	}
	return t.nodes.Get(name)
}

// Len returns the number of records.
func (t *Tree) Len() int {
	if t == nil || t.nodes == nil {
		return 0
	}
	return t.nodes.Len()
}

// All iterates records in document order.
func (t *Tree) All() iter.Seq2[string, RawNode] {
	return func(yield func(string, RawNode) bool) {
		if t == nil || t.nodes == nil {
			return
		}
		for pair := t.nodes.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// UnmarshalJSON decodes a compiled MIB document, keeping key order.
// Top-level values that are not objects, or objects that do not decode as
// a record, are skipped.
func (t *Tree) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}

	t.nodes = orderedmap.New[string, RawNode](raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		value := bytes.TrimSpace(pair.Value)
		if len(value) == 0 || value[0] != '{' {
			continue
		}
		var node RawNode
		if err := json.Unmarshal(value, &node); err != nil {
			continue
		}
		t.nodes.Set(pair.Key, node)
	}
	return nil
}

// MarshalJSON encodes the tree as a JSON object in document order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil || t.nodes == nil {
		return []byte("{}"), nil
	}
	return t.nodes.MarshalJSON()
}

// ReadTree reads and decodes a compiled MIB JSON file.
func ReadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree := NewTree()
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return tree, nil
}

// WriteTree encodes the tree as indented JSON into path.
func WriteTree(path string, tree *Tree) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
