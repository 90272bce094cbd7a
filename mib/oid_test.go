package mib

import "testing"

func TestParseOID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "1.3.6.1", "1.3.6.1", false},
		{"single arc", "1", "1", false},
		{"leading dot", ".1.3.6.1", "1.3.6.1", false},
		{"empty string", "", "", true},
		{"leading dot only", ".", "", true},
		{"zero arc", "0", "0", false},
		{"large arc", "4294967295", "4294967295", false},
		{"overflow", "4294967296", "", true},
		{"invalid char", "1.3.x.1", "", true},
		{"empty arc", "1..3", "", true},
		{"trailing dot", "1.3.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseOID(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOID(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseOID(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestScalarInstance(t *testing.T) {
	tests := []struct {
		oid  string
		want string
	}{
		{"1.3.6.1.2.1.1.1", "1.3.6.1.2.1.1.1.0"},
		{"1.3.6.1.2.1.1.1.0", "1.3.6.1.2.1.1.1.0"},
		{"1.3.6.1.2.1.1.10", "1.3.6.1.2.1.1.10.0"},
	}
	for _, tt := range tests {
		got := ScalarInstance(tt.oid)
		if got != tt.want {
			t.Errorf("ScalarInstance(%q) = %q, want %q", tt.oid, got, tt.want)
		}
		if again := ScalarInstance(got); again != got {
			t.Errorf("ScalarInstance not idempotent: %q -> %q", got, again)
		}
	}
}

func TestColumnTable(t *testing.T) {
	tests := []struct {
		oid  string
		want string
	}{
		{"1.3.6.1.2.1.2.2.1.10", "1.3.6.1.2.1.2.2"},
		{"1.3.6.1.2.1.2.2.1.1", "1.3.6.1.2.1.2.2"},
		{"1.3.6.1.4.1.9.9.13.1.3.1.3", "1.3.6.1.4.1.9.9.13.1.3"},
		// The entry arc is not checked.
		{"1.3.6.1.2.1.2.2.7.10", "1.3.6.1.2.1.2.2"},
		{"1.3", ""},
	}
	for _, tt := range tests {
		if got := ColumnTable(tt.oid); got != tt.want {
			t.Errorf("ColumnTable(%q) = %q, want %q", tt.oid, got, tt.want)
		}
	}
}

func TestContainsOIDOverMatchesSiblings(t *testing.T) {
	if !ContainsOID("1.3.6.1.2.1.2.2.1.10", "1.3.6.1.2.1.2") {
		t.Error("subtree node should match its root")
	}
	if !ContainsOID("1.3.6.1.2.1.20.5", "1.3.6.1.2.1.2") {
		t.Error("substring matching is expected to match sibling 1.3.6.1.2.1.20")
	}
	if ContainsOID("1.3.6.1.2.1.1.1", "1.3.6.1.2.1.2") {
		t.Error("unrelated OID should not match")
	}
}

func TestHasOIDPrefix(t *testing.T) {
	tests := []struct {
		oid, root string
		want      bool
	}{
		{"1.3.6.1.2.1.2.2.1.10", "1.3.6.1.2.1.2", true},
		{"1.3.6.1.2.1.2", "1.3.6.1.2.1.2", true},
		{"1.3.6.1.2.1.20.5", "1.3.6.1.2.1.2", false},
		{"1.3.6.1", "1.3.6.1.2", false},
		{"bogus", "1.3", false},
	}
	for _, tt := range tests {
		if got := HasOIDPrefix(tt.oid, tt.root); got != tt.want {
			t.Errorf("HasOIDPrefix(%q, %q) = %v, want %v", tt.oid, tt.root, got, tt.want)
		}
	}
}
