// Package styles holds the lipgloss theme of the property browser.
package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"artbind/internal/domain"
)

// Palette
var (
	Accent = lipgloss.Color("#7C3AED")
	Ok     = lipgloss.Color("#10B981")
	Dim    = lipgloss.Color("#6B7280")
	Danger = lipgloss.Color("#EF4444")
	Light  = lipgloss.Color("#FFFFFF")
)

// kind families share a color
var (
	numericColor   = lipgloss.Color("#60A5FA")
	textColor      = lipgloss.Color("#34D399")
	choiceColor    = lipgloss.Color("#FBBF24")
	actionColor    = lipgloss.Color("#EC4899")
	mediaColor     = lipgloss.Color("#F97316")
	containerColor = lipgloss.Color("#8B5CF6")
)

var kindColors = map[domain.Kind]lipgloss.Color{
	domain.KindNumber:      numericColor,
	domain.KindInteger:     numericColor,
	domain.KindSymbolListIndex: numericColor,
	domain.KindString:      textColor,
	domain.KindBoolean:     textColor,
	domain.KindColor:       textColor,
	domain.KindEnum:        choiceColor,
	domain.KindArtboard:    choiceColor,
	domain.KindTrigger:     actionColor,
	domain.KindImage:       mediaColor,
	domain.KindFont:        mediaColor,
	domain.KindViewModel:   containerColor,
	domain.KindList:        containerColor,
}

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Dim).
			Italic(true)

	Section = lipgloss.NewStyle().
		Foreground(Ok).
		Bold(true)

	Faint = lipgloss.NewStyle().Foreground(Dim)

	// Property tree
	Group = lipgloss.NewStyle().
		Bold(true).
		Foreground(containerColor)

	Cursor = lipgloss.NewStyle().
		Background(Accent).
		Foreground(Light).
		Bold(true)

	Value = lipgloss.NewStyle().Foreground(Light)

	Unset = lipgloss.NewStyle().
		Foreground(Dim).
		Italic(true)

	Editor = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Ok).
		Padding(0, 1)

	Info = lipgloss.NewStyle().
		Foreground(Ok).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Tree glyphs
const (
	Expanded  = "▼ "
	Collapsed = "▶ "
	Leaf      = "  "
)

// KindColor returns the color used for a property kind
func KindColor(k domain.Kind) lipgloss.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return Dim
}

// Kind renders a kind name in its color
func Kind(k domain.Kind) string {
	return lipgloss.NewStyle().Foreground(KindColor(k)).Render(k.String())
}

// Help returns a help model styled with the theme
func Help() help.Model {
	h := help.New()
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = Faint
	h.Styles.ShortSeparator = Faint
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = Faint
	h.Styles.FullSeparator = Faint
	h.Styles.Ellipsis = Faint
	return h
}

// Swatch renders a two-cell block filled with c
func Swatch(c domain.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(rgbHex(c))).
		Render("  ")
}

func rgbHex(c domain.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
