package mib

import (
	"errors"
	"fmt"
)

// ErrInvalidNode is returned by Classify when a record lacks its oid, name
// or class.
var ErrInvalidNode = errors.New("invalid MIB node")

// ClassObjectType is the class of records describing an OBJECT-TYPE.
const ClassObjectType = "objecttype"

// RawNode is one record of a compiled MIB JSON document.
//
// Example:
//
//	{
//	    "name": "ifInOctets",
//	    "oid": "1.3.6.1.2.1.2.2.1.10",
//	    "nodetype": "column",
//	    "class": "objecttype",
//	    "maxaccess": "read-only",
//	    "status": "current",
//	    "description": "The total number of octets received on the interface."
//	}
//
// Empty strings stand for absent keys.
type RawNode struct {
	Name        string `json:"name,omitempty"`
	OID         string `json:"oid,omitempty"`
	Class       string `json:"class,omitempty"`
	NodeType    string `json:"nodetype,omitempty"`
	MaxAccess   string `json:"maxaccess,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// Node is a classified, read-only view of a valid RawNode.
type Node struct {
	module      string
	name        string
	oid         string
	kind        Kind
	access      Access
	description string
	readable    bool
}

// Module returns the name of the MIB module the node was read from.
func (n Node) Module() string { return n.module }

// Name returns the node's symbolic name.
func (n Node) Name() string { return n.name }

// OID returns the dotted OID as written in the record.
func (n Node) OID() string { return n.oid }

// Kind returns the node's classification.
func (n Node) Kind() Kind { return n.kind }

// Access returns the parsed maxaccess of the record.
func (n Node) Access() Access { return n.access }

// Description returns the node's description, or "" if none.
func (n Node) Description() string { return n.description }

// Readable reports whether the node may be polled. Every classified
// OBJECT-TYPE is currently considered readable; Access is kept for callers
// that want to filter on it.
func (n Node) Readable() bool { return n.readable }

func (n Node) String() string {
	return n.module + "::" + n.name + " [" + n.oid + "] " + n.kind.String()
}

// Classify turns a raw record of the given module into a Node.
//
// Records without oid, name or class fail with ErrInvalidNode. Records whose
// class is not "objecttype" classify as KindNonObject without error.
func Classify(module string, raw RawNode) (Node, error) {
	switch {
	case raw.OID == "":
		return Node{}, fmt.Errorf("%w: missing oid", ErrInvalidNode)
	case raw.Name == "":
		return Node{}, fmt.Errorf("%w: missing name", ErrInvalidNode)
	case raw.Class == "":
		return Node{}, fmt.Errorf("%w: missing class", ErrInvalidNode)
	}

	n := Node{
		module: module,
		name:   raw.Name,
		oid:    raw.OID,
	}
	if raw.Class != ClassObjectType {
		n.kind = KindNonObject
		return n, nil
	}

	n.kind = kindFromNodeType(raw.NodeType)
	n.access = ParseAccess(raw.MaxAccess)
	n.description = raw.Description
	n.readable = true
	return n, nil
}
