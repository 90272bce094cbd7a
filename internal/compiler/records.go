package compiler

import (
	wasmib "github.com/lukeod/wasmib/wasmib-go"

	"github.com/golangsnmp/mibprofile/mib"
)

// Record classes, as written in the "class" field.
const (
	classObjectType        = mib.ClassObjectType
	classNotificationType  = "notificationtype"
	classObjectIdentity    = "objectidentity"
	classObjectGroup       = "objectgroup"
	classModuleCompliance  = "modulecompliance"
	classAgentCapabilities = "agentcapabilities"
)

// records collects every definition of module in OID tree order.
func records(model *wasmib.Model, module string) *mib.Tree {
	tree := mib.NewTree()
	model.WalkAll(func(n *wasmib.Node) bool {
		for _, def := range n.Definitions {
			if moduleName(model, def.Module) != module {
				continue
			}
			raw, ok := record(model, n, def)
			if ok {
				tree.Add(raw.Name, raw)
			}
		}
		return true
	})
	return tree
}

func record(model *wasmib.Model, n *wasmib.Node, def wasmib.NodeDef) (mib.RawNode, bool) {
	raw := mib.RawNode{
		Name: model.GetStr(def.Label),
		OID:  model.GetOID(n),
	}
	if raw.Name == "" || raw.OID == "" {
		return raw, false
	}

	switch n.Kind {
	case wasmib.NodeKindScalar, wasmib.NodeKindTable, wasmib.NodeKindRow, wasmib.NodeKindColumn:
		raw.Class = classObjectType
		raw.NodeType = n.Kind.String()
	case wasmib.NodeKindNotification:
		raw.Class = classNotificationType
	case wasmib.NodeKindGroup:
		raw.Class = classObjectGroup
	case wasmib.NodeKindCompliance:
		raw.Class = classModuleCompliance
	case wasmib.NodeKindCapabilities:
		raw.Class = classAgentCapabilities
	case wasmib.NodeKindNode:
		raw.Class = classObjectIdentity
	default:
		return raw, false
	}

	if obj := model.GetObjectByID(def.Object); obj != nil {
		raw.MaxAccess = obj.Access.String()
		raw.Status = obj.Status.String()
		raw.Description = model.GetStr(obj.Description)
	} else if notif := model.GetNotificationByID(def.Notification); notif != nil {
		raw.Status = notif.Status.String()
		raw.Description = model.GetStr(notif.Description)
	}
	return raw, true
}

func moduleName(model *wasmib.Model, id uint32) string {
	mod := model.GetModule(id)
	if mod == nil {
		return ""
	}
	return model.GetStr(mod.Name)
}
