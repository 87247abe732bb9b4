package domain

import (
	"fmt"
	"strconv"
)

// Value is the canonical representation of a property value. The set of
// implementations is closed; switch on the concrete type to dispatch.
type Value interface {
	Kind() Kind
	// Any returns the plain Go value (float64, int64, bool, string, ...)
	// suitable for encoding or display.
	Any() any
	isValue()
}

// NumberValue is the value of a number property
type NumberValue float64

// IntegerValue is the value of an integer property
type IntegerValue int64

// SymbolIndexValue is the value of a symbolListIndex property
type SymbolIndexValue int64

// BooleanValue is the value of a boolean property
type BooleanValue bool

// StringValue is the value of a string property
type StringValue string

// EnumValue is the selected option name of an enum property
type EnumValue string

// TriggerValue is the edge emitted when a trigger fires. Triggers never
// store a value; this only travels through updates and change events.
type TriggerValue struct{}

// ListValue is the item count of a list property
type ListValue int

// ArtboardValue names the artboard bound to an artboard property
type ArtboardValue string

func (NumberValue) Kind() Kind      { return KindNumber }
func (IntegerValue) Kind() Kind     { return KindInteger }
func (SymbolIndexValue) Kind() Kind { return KindSymbolListIndex }
func (BooleanValue) Kind() Kind     { return KindBoolean }
func (StringValue) Kind() Kind      { return KindString }
func (EnumValue) Kind() Kind        { return KindEnum }
func (TriggerValue) Kind() Kind     { return KindTrigger }
func (ListValue) Kind() Kind        { return KindList }
func (ArtboardValue) Kind() Kind    { return KindArtboard }
func (Color) Kind() Kind            { return KindColor }

func (v NumberValue) Any() any      { return float64(v) }
func (v IntegerValue) Any() any     { return int64(v) }
func (v SymbolIndexValue) Any() any { return int64(v) }
func (v BooleanValue) Any() any     { return bool(v) }
func (v StringValue) Any() any      { return string(v) }
func (v EnumValue) Any() any        { return string(v) }
func (TriggerValue) Any() any       { return true }
func (v ListValue) Any() any        { return int(v) }
func (v ArtboardValue) Any() any    { return string(v) }
func (c Color) Any() any            { return c.Hex() }

func (NumberValue) isValue()      {}
func (IntegerValue) isValue()     {}
func (SymbolIndexValue) isValue() {}
func (BooleanValue) isValue()     {}
func (StringValue) isValue()      {}
func (EnumValue) isValue()        {}
func (TriggerValue) isValue()     {}
func (ListValue) isValue()        {}
func (ArtboardValue) isValue()    {}
func (Color) isValue()            {}
func (Asset) isValue()            {}

// Asset is a decoded image or font. Payload is the opaque decoded object
// handed to the engine; the remaining fields describe it for hosts.
type Asset struct {
	AssetKind Kind // KindImage or KindFont
	Source    string
	Format    string // e.g. "png", "webp", "ttf"
	Width     int    // images only
	Height    int    // images only
	Family    string // fonts only
	Size      int    // encoded byte length
	Payload   any
}

func (a Asset) Kind() Kind { return a.AssetKind }

func (a Asset) Any() any {
	if a.AssetKind == KindFont {
		return map[string]any{"source": a.Source, "format": a.Format, "family": a.Family}
	}
	return map[string]any{"source": a.Source, "format": a.Format, "width": a.Width, "height": a.Height}
}

// FormatValue renders a value for logs and terminal output. A nil value
// (write-only or unmaterialized property) renders as "<unset>".
func FormatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return "<unset>"
	case NumberValue:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case IntegerValue:
		return strconv.FormatInt(int64(v), 10)
	case SymbolIndexValue:
		return strconv.FormatInt(int64(v), 10)
	case BooleanValue:
		return strconv.FormatBool(bool(v))
	case StringValue:
		return strconv.Quote(string(v))
	case EnumValue:
		return string(v)
	case TriggerValue:
		return "fired"
	case ListValue:
		return fmt.Sprintf("[%d items]", int(v))
	case ArtboardValue:
		return "@" + string(v)
	case Color:
		return v.Hex()
	case Asset:
		if v.AssetKind == KindFont {
			return fmt.Sprintf("font %s (%s)", v.Family, v.Source)
		}
		return fmt.Sprintf("image %dx%d (%s)", v.Width, v.Height, v.Source)
	default:
		return fmt.Sprintf("%v", v)
	}
}
