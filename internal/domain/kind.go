package domain

import "strings"

// Kind represents the declared type of a property in a ViewModel graph
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindString
	KindColor
	KindTrigger
	KindEnum
	KindImage
	KindFont
	KindList
	KindArtboard
	KindViewModel
	KindSymbolListIndex
)

var kindNames = map[Kind]string{
	KindNone:            "none",
	KindNumber:          "number",
	KindInteger:         "integer",
	KindBoolean:         "boolean",
	KindString:          "string",
	KindColor:           "color",
	KindTrigger:         "trigger",
	KindEnum:            "enumType",
	KindImage:           "image",
	KindFont:            "font",
	KindList:            "list",
	KindArtboard:        "artboard",
	KindViewModel:       "viewModel",
	KindSymbolListIndex: "symbolListIndex",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "none"
}

// ParseKind converts a kind name to a Kind. Matching is case-insensitive and
// accepts a few common aliases (enum, bool, text, nested, ...). Unrecognized
// names map to KindNone.
func ParseKind(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "number", "float", "double":
		return KindNumber
	case "integer", "int":
		return KindInteger
	case "boolean", "bool":
		return KindBoolean
	case "string", "text":
		return KindString
	case "color", "colour":
		return KindColor
	case "trigger":
		return KindTrigger
	case "enumtype", "enum":
		return KindEnum
	case "image":
		return KindImage
	case "font":
		return KindFont
	case "list":
		return KindList
	case "artboard":
		return KindArtboard
	case "viewmodel", "nested":
		return KindViewModel
	case "symbollistindex", "symbolindex":
		return KindSymbolListIndex
	default:
		return KindNone
	}
}

// IsContainer reports whether nodes of this kind carry children.
func (k Kind) IsContainer() bool {
	return k == KindViewModel || k == KindList
}

// IsScalar reports whether the kind holds a materialized, listenable value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindNumber, KindInteger, KindBoolean, KindString, KindColor, KindEnum, KindSymbolListIndex:
		return true
	}
	return false
}

// IsNumeric reports whether the kind shares the floating point native representation.
func (k Kind) IsNumeric() bool {
	return k == KindNumber || k == KindInteger || k == KindSymbolListIndex
}
