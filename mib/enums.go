package mib

import "fmt"

// Kind identifies how a classified node contributes to a profile.
type Kind int

const (
	KindUnknown   Kind = iota // OBJECT-TYPE without a nodetype
	KindScalar                // single instance value
	KindTable                 // table root (SEQUENCE OF)
	KindColumn                // column of a table entry
	KindMiddle                // structural node (row, node, ...)
	KindNonObject             // not an OBJECT-TYPE
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindScalar:
		return "scalar"
	case KindTable:
		return "table"
	case KindColumn:
		return "column"
	case KindMiddle:
		return "middle"
	case KindNonObject:
		return "non-object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Emittable reports whether nodes of this kind become profile entries.
func (k Kind) Emittable() bool {
	switch k {
	case KindScalar, KindTable, KindColumn:
		return true
	default:
		return false
	}
}

// kindFromNodeType maps a raw nodetype value to a Kind.
// The empty string means the record carried no nodetype.
func kindFromNodeType(nodeType string) Kind {
	switch nodeType {
	case "":
		return KindUnknown
	case "scalar":
		return KindScalar
	case "table":
		return KindTable
	case "column":
		return KindColumn
	default:
		return KindMiddle
	}
}

// Access levels for OBJECT-TYPE definitions, as found in maxaccess.
type Access int

const (
	AccessUnspecified         Access = iota // no maxaccess in the record
	AccessNotAccessible                     // not directly accessible
	AccessAccessibleForNotify               // SMIv2: only in notifications
	AccessReadOnly                          // GET only
	AccessReadWrite                         // GET and SET
	AccessReadCreate                        // SMIv2: GET, SET, row creation
	AccessWriteOnly                         // SMIv1: SET only (obsolete)
	AccessOther                             // anything else
)

func (a Access) String() string {
	switch a {
	case AccessUnspecified:
		return ""
	case AccessNotAccessible:
		return "not-accessible"
	case AccessAccessibleForNotify:
		return "accessible-for-notify"
	case AccessReadOnly:
		return "read-only"
	case AccessReadWrite:
		return "read-write"
	case AccessReadCreate:
		return "read-create"
	case AccessWriteOnly:
		return "write-only"
	case AccessOther:
		return "other"
	default:
		return fmt.Sprintf("Access(%d)", a)
	}
}

// ParseAccess converts a maxaccess keyword to an Access value.
// pysmi emits camel case ("readonly"), SMI sources use dashes ("read-only");
// both spellings are accepted.
func ParseAccess(s string) Access {
	switch s {
	case "":
		return AccessUnspecified
	case "not-accessible", "notaccessible":
		return AccessNotAccessible
	case "accessible-for-notify", "accessiblefornotify":
		return AccessAccessibleForNotify
	case "read-only", "readonly":
		return AccessReadOnly
	case "read-write", "readwrite":
		return AccessReadWrite
	case "read-create", "readcreate":
		return AccessReadCreate
	case "write-only", "writeonly":
		return AccessWriteOnly
	default:
		return AccessOther
	}
}

// Readable reports whether a GET on an object with this access can succeed.
// Unspecified access is treated as readable.
func (a Access) Readable() bool {
	switch a {
	case AccessNotAccessible, AccessAccessibleForNotify, AccessWriteOnly:
		return false
	default:
		return true
	}
}
