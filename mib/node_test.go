package mib

import (
	"errors"
	"testing"
)

func TestClassifyRejectsIncompleteRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  RawNode
	}{
		{"missing oid", RawNode{Name: "sysDescr", Class: "objecttype", NodeType: "scalar"}},
		{"missing name", RawNode{OID: "1.3.6.1.2.1.1.1", Class: "objecttype", NodeType: "scalar"}},
		{"missing class", RawNode{Name: "sysDescr", OID: "1.3.6.1.2.1.1.1", NodeType: "scalar"}},
		{"empty record", RawNode{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify("SNMPv2-MIB", tt.raw)
			if !errors.Is(err, ErrInvalidNode) {
				t.Fatalf("Classify() error = %v, want ErrInvalidNode", err)
			}
		})
	}
}

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		nodeType string
		want     Kind
	}{
		{"scalar", "objecttype", "scalar", KindScalar},
		{"table", "objecttype", "table", KindTable},
		{"column", "objecttype", "column", KindColumn},
		{"row is middle", "objecttype", "row", KindMiddle},
		{"other nodetype is middle", "objecttype", "node", KindMiddle},
		{"missing nodetype", "objecttype", "", KindUnknown},
		{"type definition", "type", "", KindNonObject},
		{"textual convention", "textualconvention", "", KindNonObject},
		{"object identity", "objectidentity", "scalar", KindNonObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawNode{
				Name:     "node",
				OID:      "1.3.6.1.4.1.9999.1",
				Class:    tt.class,
				NodeType: tt.nodeType,
			}
			n, err := Classify("TEST-MIB", raw)
			if err != nil {
				t.Fatalf("Classify() unexpected error: %v", err)
			}
			if n.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", n.Kind(), tt.want)
			}
			if n.Kind().Emittable() != (tt.want == KindScalar || tt.want == KindTable || tt.want == KindColumn) {
				t.Errorf("Emittable() = %v for %v", n.Kind().Emittable(), n.Kind())
			}
		})
	}
}

func TestClassifyCarriesMetadata(t *testing.T) {
	raw := RawNode{
		Name:        "ifInOctets",
		OID:         "1.3.6.1.2.1.2.2.1.10",
		Class:       "objecttype",
		NodeType:    "column",
		MaxAccess:   "read-only",
		Description: "The total number of octets received on the interface.",
	}
	n, err := Classify("IF-MIB", raw)
	if err != nil {
		t.Fatalf("Classify() unexpected error: %v", err)
	}
	if n.Module() != "IF-MIB" || n.Name() != "ifInOctets" || n.OID() != "1.3.6.1.2.1.2.2.1.10" {
		t.Errorf("unexpected identity: %s", n)
	}
	if n.Access() != AccessReadOnly {
		t.Errorf("Access() = %v, want read-only", n.Access())
	}
	if n.Description() != raw.Description {
		t.Errorf("Description() = %q", n.Description())
	}
	if !n.Readable() {
		t.Error("classified OBJECT-TYPE should be readable")
	}
}

func TestClassifyDoesNotModifyInput(t *testing.T) {
	raw := RawNode{Name: "sysDescr", OID: "1.3.6.1.2.1.1.1", Class: "objecttype", NodeType: "scalar"}
	before := raw
	if _, err := Classify("SNMPv2-MIB", raw); err != nil {
		t.Fatal(err)
	}
	if raw != before {
		t.Errorf("input modified: %+v", raw)
	}
}
