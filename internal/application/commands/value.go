package commands

import (
	"strings"

	"github.com/goccy/go-yaml"
)

// ParseValue turns loosely typed host text into a raw property value.
// Numbers, booleans, sequences and maps are read as YAML so "0.5",
// "[1, 0, 0]" and "{r: 255, g: 0, b: 0}" reach the normalizer typed.
// Hex colors ("#3EC293", "0xFF3EC293") and anything YAML cannot read stay
// strings. "null" or "~" yields nil, which a trigger treats as falsy and
// skips; bare digits such as "112233" are numbers.
func ParseValue(text string) any {
	s := strings.TrimSpace(text)
	if s == "" || strings.HasPrefix(s, "#") || isHexLiteral(s) {
		return text
	}

	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return text
	}
	return v
}

func isHexLiteral(s string) bool {
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
