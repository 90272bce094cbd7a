package profile

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/golangsnmp/mibprofile/mib"
)

// Assemble folds classified nodes into profile entries.
//
// Scalars become standalone entries keyed by their instance OID. Columns
// are grouped under the table entry keyed by their table OID, creating it
// provisionally if the table node has not been seen yet. Entries are
// returned in the order their key was first seen. Nodes of non-emittable
// kinds are ignored.
func Assemble(nodes []mib.Node) []Metric {
	a := NewAssembler()
	for _, n := range nodes {
		a.Add(n)
	}
	return a.Metrics()
}

// Assembler accumulates profile entries one node at a time.
type Assembler struct {
	entries *orderedmap.OrderedMap[string, *Metric]
}

// NewAssembler returns an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{entries: orderedmap.New[string, *Metric]()}
}

// Add folds one node into the profile.
func (a *Assembler) Add(n mib.Node) {
	switch n.Kind() {
	case mib.KindTable:
		a.addTable(n)
	case mib.KindColumn:
		a.addColumn(n)
	case mib.KindScalar:
		a.addScalar(n)
	}
}

// Len returns the number of entries assembled so far.
func (a *Assembler) Len() int { return a.entries.Len() }

// Metrics returns the assembled entries in first-insertion order.
func (a *Assembler) Metrics() []Metric {
	metrics := make([]Metric, 0, a.entries.Len())
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		metrics = append(metrics, *pair.Value)
	}
	return metrics
}

func (a *Assembler) addTable(n mib.Node) {
	entry := &Metric{
		MIB:   n.Module(),
		Table: symbolOf(n, n.OID()),
	}
	// A column may have created the entry already; keep what it gathered.
	if prev, ok := a.entries.Get(n.OID()); ok {
		entry.Symbols = prev.Symbols
	}
	a.entries.Set(n.OID(), entry)
}

func (a *Assembler) addColumn(n mib.Node) {
	tableOID := mib.ColumnTable(n.OID())
	entry, ok := a.entries.Get(tableOID)
	if !ok {
		entry = &Metric{
			MIB:   n.Module(),
			Table: &Symbol{OID: tableOID},
		}
		a.entries.Set(tableOID, entry)
	}
	entry.Symbols = append(entry.Symbols, *symbolOf(n, n.OID()))
}

func (a *Assembler) addScalar(n mib.Node) {
	oid := mib.ScalarInstance(n.OID())
	a.entries.Set(oid, &Metric{
		MIB:    n.Module(),
		Symbol: symbolOf(n, oid),
	})
}

func symbolOf(n mib.Node, oid string) *Symbol {
	return &Symbol{
		Name:        n.Name(),
		OID:         oid,
		Description: n.Description(),
	}
}
