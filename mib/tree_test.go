package mib

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"testing"
)

const ifMibJSON = `{
  "imports": {
    "class": "imports",
    "SNMPv2-SMI": ["Counter32", "OBJECT-TYPE"]
  },
  "ifTable": {
    "name": "ifTable",
    "oid": "1.3.6.1.2.1.2.2",
    "nodetype": "table",
    "class": "objecttype",
    "maxaccess": "not-accessible"
  },
  "ifEntry": {
    "name": "ifEntry",
    "oid": "1.3.6.1.2.1.2.2.1",
    "nodetype": "row",
    "class": "objecttype"
  },
  "ifInOctets": {
    "name": "ifInOctets",
    "oid": "1.3.6.1.2.1.2.2.1.10",
    "nodetype": "column",
    "class": "objecttype",
    "syntax": {"type": "Counter32", "class": "type"}
  },
  "ifIndex": {
    "name": "ifIndex",
    "oid": "1.3.6.1.2.1.2.2.1.1",
    "nodetype": "column",
    "class": "objecttype"
  },
  "meta": {
    "comments": ["ASN.1 source file://IF-MIB.my"],
    "module": "IF-MIB"
  },
  "version": 2
}`

func TestTreeKeepsDocumentOrder(t *testing.T) {
	tree := NewTree()
	if err := json.Unmarshal([]byte(ifMibJSON), tree); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var names []string
	for name := range tree.All() {
		names = append(names, name)
	}
	want := []string{"imports", "ifTable", "ifEntry", "ifInOctets", "ifIndex", "meta"}
	if !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	ifIndex, ok := tree.Get("ifIndex")
	if !ok {
		t.Fatal("ifIndex not found")
	}
	if ifIndex.OID != "1.3.6.1.2.1.2.2.1.1" || ifIndex.NodeType != "column" {
		t.Errorf("ifIndex = %+v", ifIndex)
	}

	imports, _ := tree.Get("imports")
	if _, err := Classify("IF-MIB", imports); err == nil {
		t.Error("imports entry should not classify")
	}
}

func TestTreeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TEST-MIB.json")

	tree := NewTree()
	tree.Add("zeta", RawNode{Name: "zeta", OID: "1.3.6.1.4.1.9999.2", Class: "objecttype", NodeType: "scalar"})
	tree.Add("alpha", RawNode{Name: "alpha", OID: "1.3.6.1.4.1.9999.1", Class: "objecttype", NodeType: "scalar"})
	if err := WriteTree(path, tree); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	got, err := ReadTree(path)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	var names []string
	for name := range got.All() {
		names = append(names, name)
	}
	if !slices.Equal(names, []string{"zeta", "alpha"}) {
		t.Errorf("order not preserved: %v", names)
	}
}

func TestReadTreeMissingFile(t *testing.T) {
	if _, err := ReadTree(filepath.Join(t.TempDir(), "NOPE.json")); err == nil {
		t.Error("ReadTree on a missing file should fail")
	}
}
