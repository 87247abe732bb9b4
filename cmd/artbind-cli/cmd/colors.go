package cmd

import (
	"github.com/fatih/color"

	"artbind/internal/domain"
)

var kindColors = map[domain.Kind]func(string, ...any) string{
	domain.KindNumber:      color.RGB(128, 216, 236).SprintfFunc(),
	domain.KindInteger:     color.RGB(128, 216, 236).SprintfFunc(),
	domain.KindSymbolListIndex: color.RGB(128, 216, 236).SprintfFunc(),
	domain.KindBoolean:     color.CyanString,
	domain.KindString:      color.RGB(8, 196, 16).SprintfFunc(),
	domain.KindEnum:        color.RGB(198, 198, 46).SprintfFunc(),
	domain.KindTrigger:     color.RGB(255, 0, 196).SprintfFunc(),
	domain.KindImage:       color.RGB(196, 168, 128).SprintfFunc(),
	domain.KindFont:        color.RGB(196, 168, 128).SprintfFunc(),
	domain.KindArtboard:    color.RGB(196, 128, 128).SprintfFunc(),
	domain.KindViewModel:   color.RGB(128, 168, 196).SprintfFunc(),
	domain.KindList:        color.RGB(128, 168, 196).SprintfFunc(),
}

var (
	eventColor = color.New(color.FgMagenta, color.Bold).SprintFunc()
	warnColor  = color.YellowString
	dimColor   = color.RGB(96, 96, 96).SprintfFunc()
)

func arrow() string {
	return dimColor("->")
}

func formatKind(k domain.Kind) string {
	if f, ok := kindColors[k]; ok {
		return f("%s", k)
	}
	return k.String()
}

// formatValue renders v in its kind's color; colors get a swatch
func formatValue(v domain.Value) string {
	if v == nil {
		return dimColor("%s", domain.FormatValue(nil))
	}
	if c, ok := v.(domain.Color); ok {
		return swatch(c) + " " + c.Hex()
	}
	if f, ok := kindColors[v.Kind()]; ok {
		return f("%s", domain.FormatValue(v))
	}
	return domain.FormatValue(v)
}

func swatch(c domain.Color) string {
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("■")
}
