package model

import "strings"

// Kind is the construct type of a code item
type Kind int

const (
	KindOther Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindRecord
	KindRegion
	KindMethod
	KindConstructor
	KindProperty
	KindField
	KindConstant
	KindVariable
	KindDelegate
	KindEvent
	KindEnumMember
	KindIndexer
	KindSwitch
	KindImplementedInterface
)

var kindNames = map[Kind]string{
	KindOther:                "other",
	KindNamespace:            "namespace",
	KindClass:                "class",
	KindStruct:               "struct",
	KindInterface:            "interface",
	KindEnum:                 "enum",
	KindRecord:               "record",
	KindRegion:               "region",
	KindMethod:               "method",
	KindConstructor:          "constructor",
	KindProperty:             "property",
	KindField:                "field",
	KindConstant:             "constant",
	KindVariable:             "variable",
	KindDelegate:             "delegate",
	KindEvent:                "event",
	KindEnumMember:           "enummember",
	KindIndexer:              "indexer",
	KindSwitch:               "switch",
	KindImplementedInterface: "implementedinterface",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseKind returns the kind with the given name, case-insensitively
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return KindOther, false
}

// Access is the visibility of a code item
type Access int

const (
	AccessPublic Access = iota
	AccessPrivate
	AccessProtected
	AccessInternal
)

func (a Access) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	default:
		return "public"
	}
}
