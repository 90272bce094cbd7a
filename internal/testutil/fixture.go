// Package testutil writes MIB directories and profile files for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golangsnmp/mibprofile/mib"
)

// Scalar returns an OBJECT-TYPE record of node type scalar.
func Scalar(name, oid string) mib.RawNode {
	return object(name, oid, "scalar")
}

// Table returns an OBJECT-TYPE record of node type table.
func Table(name, oid string) mib.RawNode {
	return object(name, oid, "table")
}

// Row returns an OBJECT-TYPE record of node type row.
func Row(name, oid string) mib.RawNode {
	return object(name, oid, "row")
}

// Column returns an OBJECT-TYPE record of node type column.
func Column(name, oid string) mib.RawNode {
	return object(name, oid, "column")
}

// Identity returns a non OBJECT-TYPE record, the way compiled documents
// carry OBJECT IDENTIFIER and MODULE-IDENTITY definitions.
func Identity(name, oid string) mib.RawNode {
	return mib.RawNode{Name: name, OID: oid, Class: "objectidentity"}
}

func object(name, oid, nodeType string) mib.RawNode {
	return mib.RawNode{
		Name:      name,
		OID:       oid,
		Class:     mib.ClassObjectType,
		NodeType:  nodeType,
		MaxAccess: "read-only",
		Status:    "current",
	}
}

// WriteCache writes dir/<module>.json holding nodes keyed by name, in the
// given order.
func WriteCache(t testing.TB, dir, module string, nodes ...mib.RawNode) string {
	t.Helper()
	tree := mib.NewTree()
	for _, n := range nodes {
		tree.Add(n.Name, n)
	}
	path := filepath.Join(dir, module+".json")
	if err := mib.WriteTree(path, tree); err != nil {
		t.Fatalf("failed to write cache %s: %v", path, err)
	}
	return path
}

// TouchMIB creates an empty MIB source file dir/<module><ext>.
func TouchMIB(t testing.TB, dir, module, ext string) string {
	t.Helper()
	return WriteFile(t, dir, module+ext, "")
}

// WriteModule creates the source file dir/<module>.my and its compiled
// cache document.
func WriteModule(t testing.TB, dir, module string, nodes ...mib.RawNode) {
	t.Helper()
	TouchMIB(t, dir, module, ".my")
	WriteCache(t, dir, module, nodes...)
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// SampleMIBDir returns a directory holding SNMPv2-MIB with one scalar and
// IF-MIB with one table, its row and one column.
func SampleMIBDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteModule(t, dir, "SNMPv2-MIB",
		Identity("system", "1.3.6.1.2.1.1"),
		Scalar("sysDescr", "1.3.6.1.2.1.1.1"),
	)
	WriteModule(t, dir, "IF-MIB",
		Identity("interfaces", "1.3.6.1.2.1.2"),
		Table("ifTable", "1.3.6.1.2.1.2.2"),
		Row("ifEntry", "1.3.6.1.2.1.2.2.1"),
		Column("ifInOctets", "1.3.6.1.2.1.2.2.1.10"),
	)
	return dir
}
