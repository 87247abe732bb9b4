package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"artbind/internal/adapters/tui/styles"
	"artbind/internal/domain"
)

var helpView = styles.Help()

// renderHelp renders bindings as a single help line
func renderHelp(bindings ...key.Binding) string {
	return helpView.ShortHelpView(bindings)
}

// RenderMessage renders a status message, red when isError
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.Failure.Render(message)
	default:
		return styles.Info.Render(message)
	}
}

// RenderKind renders a property kind in its color
func RenderKind(k domain.Kind) string {
	return styles.Kind(k)
}

// RenderValue renders a property value; colors get a swatch and unset
// values are dimmed
func RenderValue(v domain.Value) string {
	switch v := v.(type) {
	case nil:
		return styles.Unset.Render(domain.FormatValue(nil))
	case domain.Color:
		return styles.Swatch(v) + " " + styles.Value.Render(v.Hex())
	}
	return styles.Value.Render(domain.FormatValue(v))
}

// screen lays out a full view: title, optional subtitle, then the non-empty
// blocks separated by blank lines
func screen(title, subtitle string, blocks ...string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(styles.Subtitle.Render(subtitle))
		b.WriteString("\n\n")
	}

	first := true
	for _, block := range blocks {
		if block == "" {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		b.WriteString(block)
		first = false
	}
	return styles.App.Render(b.String())
}
