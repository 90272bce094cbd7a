// Package profile models SNMP monitoring profiles and the operations that
// build, expand and compare them.
//
// A profile is a YAML document with a list of metrics. Each metric is either
// a scalar or a table with its column symbols:
//
//	metrics:
//	  - MIB: SNMPv2-MIB
//	    symbol:
//	      name: sysUpTimeInstance
//	      OID: 1.3.6.1.2.1.1.3.0
//	  - MIB: IF-MIB
//	    table:
//	      name: ifTable
//	      OID: 1.3.6.1.2.1.2.2
//	    symbols:
//	      - name: ifInOctets
//	        OID: 1.3.6.1.2.1.2.2.1.10
//
// Profiles may inherit the metrics of other profiles through "extends".
package profile

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Symbol names one OID: a scalar instance, a table or a table column.
type Symbol struct {
	Name        string `yaml:"name,omitempty"`
	OID         string `yaml:"OID,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Extra holds keys this package does not interpret (e.g. scale_factor).
	Extra map[string]any `yaml:",inline"`
}

// Metric is one profile entry. Exactly one of Symbol or Table is set for
// well-formed entries; Symbols lists the columns of a table entry.
type Metric struct {
	MIB     string   `yaml:"MIB,omitempty"`
	Symbol  *Symbol  `yaml:"symbol,omitempty"`
	Table   *Symbol  `yaml:"table,omitempty"`
	Symbols []Symbol `yaml:"symbols,omitempty"`

	// Extra holds keys this package does not interpret (e.g. metric_tags).
	Extra map[string]any `yaml:",inline"`
}

// OID returns the identifying OID of the entry: the table OID for table
// entries, the symbol OID for scalar entries. ok is false when the entry
// has neither.
func (m Metric) OID() (oid string, ok bool) {
	switch {
	case m.Table != nil:
		return m.Table.OID, true
	case m.Symbol != nil:
		return m.Symbol.OID, true
	default:
		return "", false
	}
}

// IsTable reports whether the entry describes a table.
func (m Metric) IsTable() bool { return m.Table != nil }

// Document is a profile file.
type Document struct {
	Extends []string `yaml:"extends,omitempty"`
	Metrics []Metric `yaml:"metrics"`

	// Extra holds top-level keys this package does not interpret.
	Extra map[string]any `yaml:",inline"`
}

// Decode parses a profile document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes metrics as a {metrics: [...]} YAML document.
func Marshal(metrics []Metric) ([]byte, error) {
	if metrics == nil {
		metrics = []Metric{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Metrics: metrics}); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return buf.Bytes(), nil
}
