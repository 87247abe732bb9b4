package commands

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"3", uint64(3)},
		{"-2", int64(-2)},
		{"0.5", 0.5},
		{"true", true},
		{"dark", "dark"},
		{"#3EC293", "#3EC293"},
		{"0x3EC293", "0x3EC293"},
		{"0XFF3EC293", "0XFF3EC293"},
		{"112233", uint64(112233)},
		{"rgb(255, 0, 0)", "rgb(255, 0, 0)"},
		{"[1, 0, 0.5]", []any{uint64(1), uint64(0), 0.5}},
		{"{r: 255, g: 10}", map[string]any{"r": uint64(255), "g": uint64(10)}},
		{"null", nil},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseValue(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseValue(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
