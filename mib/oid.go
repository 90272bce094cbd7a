package mib

import (
	"fmt"
	"strings"
)

// Oid is a sequence of arc values representing an SNMP Object Identifier.
type Oid []uint32

// ParseOID parses an OID from a dotted string (e.g., "1.3.6.1.2.1").
func ParseOID(s string) (Oid, error) {
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("empty OID")
	}

	var arcs []uint32
	var current uint64
	var hasDigit bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			current = current*10 + uint64(c-'0')
			if current > 1<<32-1 {
				return nil, fmt.Errorf("arc overflow in OID: %s", s)
			}
			hasDigit = true
		case c == '.':
			if !hasDigit {
				return nil, fmt.Errorf("empty arc in OID: %s", s)
			}
			arcs = append(arcs, uint32(current))
			current = 0
			hasDigit = false
		default:
			return nil, fmt.Errorf("invalid character in OID: %c", c)
		}
	}
	if !hasDigit {
		return nil, fmt.Errorf("trailing dot in OID: %s", s)
	}
	return append(arcs, uint32(current)), nil
}

// String returns the dotted string representation (e.g., "1.3.6.1.2.1").
func (o Oid) String() string {
	if len(o) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", o[0])
	for _, arc := range o[1:] {
		fmt.Fprintf(&b, ".%d", arc)
	}
	return b.String()
}

// HasPrefix returns true if this OID starts with the given prefix.
func (o Oid) HasPrefix(prefix Oid) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i, arc := range prefix {
		if o[i] != arc {
			return false
		}
	}
	return true
}

// ScalarInstance returns the instance OID of a scalar: the OID with ".0"
// appended, unless it already ends with ".0".
func ScalarInstance(oid string) string {
	if strings.HasSuffix(oid, ".0") {
		return oid
	}
	return oid + ".0"
}

// ColumnTable returns the table OID owning a column OID.
//
// Columns are <table>.<entry>.<column>, where the entry arc is 1 by SNMP
// convention; the last two arcs are dropped without checking the entry arc.
// An OID with fewer than three arcs yields "".
func ColumnTable(oid string) string {
	arcs := strings.Split(oid, ".")
	if len(arcs) < 3 {
		return ""
	}
	return strings.Join(arcs[:len(arcs)-2], ".")
}

// ContainsOID reports whether root appears inside oid as a plain substring.
// "1.3.6.1.2.1.2" therefore also matches "1.3.6.1.2.1.20.5".
func ContainsOID(oid, root string) bool {
	return strings.Contains(oid, root)
}

// HasOIDPrefix reports whether oid lies in the subtree rooted at root,
// comparing whole arcs. Unparsable OIDs never match.
func HasOIDPrefix(oid, root string) bool {
	o, err := ParseOID(oid)
	if err != nil {
		return false
	}
	r, err := ParseOID(root)
	if err != nil {
		return false
	}
	return o.HasPrefix(r)
}
