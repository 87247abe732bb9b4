package domain

import (
	"errors"
	imagecolor "image/color"
	"testing"
)

func TestParseColor_EquivalentShapes(t *testing.T) {
	want := Color{R: 62, G: 194, B: 147, A: 255}

	inputs := []struct {
		name  string
		input any
	}{
		{"hex", "#3EC293"},
		{"rgb function", "rgb(62,194,147)"},
		{"standard map", map[string]any{"r": 62, "g": 194, "b": 147}},
		{"normalized map", map[string]any{"r": 0.2431, "g": 0.7608, "b": 0.5764}},
		{"standard list", []any{62, 194, 147}},
		{"normalized list", []any{0.2431, 0.7608, 0.5764}},
		{"named", "teal"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !within(got, want, 1) {
				t.Errorf("expected %v (±1), got %v", want, got)
			}
		})
	}
}

func TestParseColor_Hex(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#3EC", Color{0x33, 0xEE, 0xCC, 0xFF}},
		{"#3ec293", Color{0x3E, 0xC2, 0x93, 0xFF}},
		{"#803EC293", Color{0x3E, 0xC2, 0x93, 0x80}},
		{"0xFF3EC293", Color{0x3E, 0xC2, 0x93, 0xFF}},
		{"0x3EC293", Color{0x3E, 0xC2, 0x93, 0xFF}},
		{"  #000  ", Color{0, 0, 0, 0xFF}},
		{"00ff00", Color{0, 0xFF, 0, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseColor_RGBA(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"rgba(62, 194, 147, 128)", Color{62, 194, 147, 128}},
		{"rgba(62,194,147,0.5)", Color{62, 194, 147, 128}},
		{"rgba(62,194,147,1.0)", Color{62, 194, 147, 255}},
		{"rgba(62,194,147,1)", Color{62, 194, 147, 1}},
		{"rgba(62,194,147,2.5)", Color{62, 194, 147, 255}},
		{"RGB(300, -4, 147)", Color{255, 0, 147, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseColor_MapsAndSequences(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Color
	}{
		{
			name:  "long keys with alpha",
			input: map[string]any{"red": 10, "green": 20, "blue": 30, "alpha": 40},
			want:  Color{10, 20, 30, 40},
		},
		{
			name:  "normalized alpha defaults opaque",
			input: map[string]float64{"r": 0.5, "g": 0, "b": 1},
			want:  Color{128, 0, 255, 255},
		},
		{
			name:  "normalized tuple scales alpha",
			input: []float64{0.5, 0.5, 0.5, 0.5},
			want:  Color{128, 128, 128, 128},
		},
		{
			name:  "standard tuple rounds fractions",
			input: []any{10.4, 20.6, 30, 255},
			want:  Color{10, 21, 30, 255},
		},
		{
			name:  "whole-number ones are standard range",
			input: []int{1, 1, 1},
			want:  Color{1, 1, 1, 255},
		},
		{
			name:  "uppercase keys",
			input: map[string]any{"R": 1, "G": 2, "B": 3},
			want:  Color{1, 2, 3, 255},
		},
		{
			name:  "unrelated keys are ignored",
			input: map[string]any{"r": 62, "g": 194, "b": 147, "name": "teal"},
			want:  Color{62, 194, 147, 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseColor_NativeObjects(t *testing.T) {
	got, err := ParseColor(FloatColor{R: 1, G: 0.5, B: 0, A: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Color{255, 128, 0, 255}) {
		t.Errorf("expected orange, got %v", got)
	}

	got, err = ParseColor(imagecolor.NRGBA{R: 62, G: 194, B: 147, A: 255})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Color{62, 194, 147, 255}) {
		t.Errorf("expected teal, got %v", got)
	}
}

func TestParseColor_Named(t *testing.T) {
	for _, name := range []string{"Red", " GREY ", "gray", "amber", "Brown"} {
		if _, err := ParseColor(name); err != nil {
			t.Errorf("expected %q to parse, got %v", name, err)
		}
	}
	grey, _ := NamedColor("grey")
	gray, _ := NamedColor("GRAY")
	if grey != gray {
		t.Errorf("expected grey and gray to match, got %v and %v", grey, gray)
	}
}

func TestParseColor_FallsBackToWhite(t *testing.T) {
	inputs := []any{
		"not-a-color",
		"#12345",
		"rgb(1,2)",
		"rgba(1,2,3,x)",
		[]any{1, 2},
		map[string]any{"r": 1, "g": 2},
		map[string]any{"r": "a", "g": 2, "b": 3},
		true,
		nil,
	}

	for _, input := range inputs {
		got, err := ParseColor(input)
		if err == nil {
			t.Errorf("expected fallback error for %v", input)
			continue
		}
		if !errors.Is(err, ErrNormalizationFallback) {
			t.Errorf("expected ErrNormalizationFallback, got %v", err)
		}
		if got != ColorWhite {
			t.Errorf("expected white fallback for %v, got %v", input, got)
		}
	}
}

func TestColor_HexAndARGB(t *testing.T) {
	c := Color{R: 0x3E, G: 0xC2, B: 0x93, A: 0xFF}
	if c.Hex() != "#FF3EC293" {
		t.Errorf("expected #FF3EC293, got %s", c.Hex())
	}
	if c.ARGB() != 0xFF3EC293 {
		t.Errorf("expected 0xFF3EC293, got %#x", c.ARGB())
	}
	if ColorFromARGB(c.ARGB()) != c {
		t.Errorf("expected ARGB to unpack to %v", c)
	}
}

func within(a, b Color, tolerance int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(a.R, b.R) <= tolerance &&
		diff(a.G, b.G) <= tolerance &&
		diff(a.B, b.B) <= tolerance &&
		diff(a.A, b.A) <= tolerance
}
