package domain

import (
	"encoding/json"
	"fmt"
	imagecolor "image/color"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Color is an 8-bit straight-alpha RGBA color
type Color struct {
	R, G, B, A uint8
}

// ColorWhite is the fallback for unparseable color input
var ColorWhite = Color{255, 255, 255, 255}

// Hex renders the color as #AARRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// ARGB packs the color big-endian as 0xAARRGGBB, the layout engines use
// for color properties.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorFromARGB unpacks a 0xAARRGGBB value.
func ColorFromARGB(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// NormalizedColor is implemented by native color objects that expose
// channels in [0, 1].
type NormalizedColor interface {
	NormalizedRGBA() (r, g, b, a float64)
}

// FloatColor represents an RGBA color with components in [0, 1]. Not premultiplied.
type FloatColor struct {
	R, G, B, A float64
}

func (c FloatColor) NormalizedRGBA() (r, g, b, a float64) {
	return c.R, c.G, c.B, c.A
}

// Float converts to normalized channels.
func (c Color) Float() FloatColor {
	return FloatColor{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

var namedColors = map[string]Color{
	"red":    ColorFromARGB(0xFFF44336),
	"blue":   ColorFromARGB(0xFF2196F3),
	"green":  ColorFromARGB(0xFF4CAF50),
	"yellow": ColorFromARGB(0xFFFFEB3B),
	"orange": ColorFromARGB(0xFFFF9800),
	"purple": ColorFromARGB(0xFF9C27B0),
	"pink":   ColorFromARGB(0xFFE91E63),
	"cyan":   ColorFromARGB(0xFF00BCD4),
	"teal":   ColorFromARGB(0xFF3EC293),
	"lime":   ColorFromARGB(0xFFCDDC39),
	"indigo": ColorFromARGB(0xFF3F51B5),
	"black":  ColorFromARGB(0xFF000000),
	"white":  ColorFromARGB(0xFFFFFFFF),
	"grey":   ColorFromARGB(0xFF9E9E9E),
	"gray":   ColorFromARGB(0xFF9E9E9E),
	"amber":  ColorFromARGB(0xFFFFC107),
	"brown":  ColorFromARGB(0xFF795548),
}

// NamedColor looks up a color by name, ignoring case and surrounding space.
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ParseColor converts any supported color shape to a Color:
//
//   - a Color, a NormalizedColor (channels in [0,1]) or an image/color.Color
//   - hex strings: #RGB, #RRGGBB, #AARRGGBB, optionally 0x-prefixed
//   - rgb(r,g,b) and rgba(r,g,b,a) where a is 0-255 or a 0.0-1.0 float
//   - maps keyed r/red, g/green, b/blue and optional a/alpha
//   - sequences of 3 or 4 numbers
//   - named colors
//
// Maps and sequences whose R, G or B is a non-integer <= 1.0 are read as
// normalized and scaled by 255.
//
// On failure the returned color is ColorWhite and the error is a
// *NormalizationError; callers are expected to apply the fallback.
func ParseColor(v any) (Color, error) {
	c, err := parseColor(v)
	if err != nil {
		return ColorWhite, &NormalizationError{Kind: KindColor, Input: v, Reason: err.Error(), Fallback: ColorWhite}
	}
	return c, nil
}

func parseColor(v any) (Color, error) {
	switch v := v.(type) {
	case nil:
		return Color{}, fmt.Errorf("no color given")
	case Color:
		return v, nil
	case *Color:
		if v == nil {
			return Color{}, fmt.Errorf("no color given")
		}
		return *v, nil
	case NormalizedColor:
		r, g, b, a := v.NormalizedRGBA()
		return Color{R: scaleUnit(r), G: scaleUnit(g), B: scaleUnit(b), A: scaleUnit(a)}, nil
	case imagecolor.Color:
		n := imagecolor.NRGBAModel.Convert(v).(imagecolor.NRGBA)
		return Color{R: n.R, G: n.G, B: n.B, A: n.A}, nil
	case string:
		return parseColorString(v)
	case uint32:
		return ColorFromARGB(v), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return parseColorMap(rv)
	case reflect.Slice, reflect.Array:
		return parseColorSequence(rv)
	}
	return Color{}, fmt.Errorf("unsupported color shape %T", v)
}

func parseColorString(s string) (Color, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return Color{}, fmt.Errorf("empty color string")
	}
	if c, ok := namedColors[trimmed]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(trimmed, "rgba(") && strings.HasSuffix(trimmed, ")"):
		return parseRGBFunc(trimmed[len("rgba("):len(trimmed)-1], 4)
	case strings.HasPrefix(trimmed, "rgb(") && strings.HasSuffix(trimmed, ")"):
		return parseRGBFunc(trimmed[len("rgb("):len(trimmed)-1], 3)
	}

	return parseHex(trimmed)
}

// parseHex reads #RGB, #RRGGBB and #AARRGGBB with an optional 0x prefix.
func parseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	hex = strings.TrimPrefix(hex, "0x")

	switch len(hex) {
	case 3:
		expanded := make([]byte, 0, 8)
		expanded = append(expanded, 'f', 'f')
		for i := 0; i < 3; i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6:
		hex = "ff" + hex
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return ColorFromARGB(uint32(n)), nil
}

func parseRGBFunc(args string, want int) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid channel %q", parts[i])
		}
		ch[i] = clampByte(f)
	}

	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if want == 4 {
		raw := strings.TrimSpace(parts[3])
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q", raw)
		}
		if strings.Contains(raw, ".") {
			c.A = scaleUnit(f)
		} else {
			c.A = clampByte(f)
		}
	}
	return c, nil
}

var channelKeys = [4][2]string{
	{"r", "red"},
	{"g", "green"},
	{"b", "blue"},
	{"a", "alpha"},
}

func isChannelKey(key string) bool {
	key = strings.ToLower(key)
	for _, keys := range channelKeys {
		if key == keys[0] || key == keys[1] {
			return true
		}
	}
	return false
}

func parseColorMap(rv reflect.Value) (Color, error) {
	values := make(map[string]float64, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String || !isChannelKey(k.String()) {
			continue
		}
		f, ok := ToFloat(iter.Value().Interface())
		if !ok {
			return Color{}, fmt.Errorf("channel %q is not a number", k.String())
		}
		values[strings.ToLower(k.String())] = f
	}

	var ch [4]float64
	var present [4]bool
	for i, keys := range channelKeys {
		for _, key := range keys {
			if f, ok := values[key]; ok {
				ch[i] = f
				present[i] = true
				break
			}
		}
	}
	for i := 0; i < 3; i++ {
		if !present[i] {
			return Color{}, fmt.Errorf("missing %s channel", channelKeys[i][1])
		}
	}
	return colorFromChannels(ch[0], ch[1], ch[2], ch[3], present[3]), nil
}

func parseColorSequence(rv reflect.Value) (Color, error) {
	n := rv.Len()
	if n != 3 && n != 4 {
		return Color{}, fmt.Errorf("expected 3 or 4 components, got %d", n)
	}
	var ch [4]float64
	for i := 0; i < n; i++ {
		f, ok := ToFloat(rv.Index(i).Interface())
		if !ok {
			return Color{}, fmt.Errorf("component %d is not a number", i)
		}
		ch[i] = f
	}
	return colorFromChannels(ch[0], ch[1], ch[2], ch[3], n == 4), nil
}

// colorFromChannels detects the normalized range across the whole tuple:
// if any of r, g, b is a non-integer <= 1.0 every channel is scaled.
func colorFromChannels(r, g, b, a float64, hasAlpha bool) Color {
	if isUnitFraction(r) || isUnitFraction(g) || isUnitFraction(b) {
		c := Color{R: scaleUnit(r), G: scaleUnit(g), B: scaleUnit(b), A: 255}
		if hasAlpha {
			c.A = scaleUnit(a)
		}
		return c
	}

	c := Color{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
	if hasAlpha {
		if isUnitFraction(a) {
			c.A = scaleUnit(a)
		} else {
			c.A = clampByte(a)
		}
	}
	return c
}

func isUnitFraction(f float64) bool {
	return f <= 1.0 && f != math.Trunc(f)
}

// scaleUnit clamps f to [0,1] and scales it to [0,255].
func scaleUnit(f float64) uint8 {
	if math.IsNaN(f) {
		return 0
	}
	return clampByte(math.Max(0, math.Min(1, f)) * 255)
}

func clampByte(f float64) uint8 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(math.Round(f))
}

// ToFloat converts any Go numeric value (or json.Number) to float64.
// Strings and booleans are not numbers.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case NumberValue:
		return float64(n), true
	case IntegerValue:
		return float64(n), true
	case SymbolIndexValue:
		return float64(n), true
	}
	return 0, false
}
