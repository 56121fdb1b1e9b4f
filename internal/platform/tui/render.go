package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-merge/internal/core"
)

// ansiCodes holds the 256-color code of every core.Color. Fruit tiers
// pick their color by name in the config, so every entry here must match
// a name core.ParseColor accepts.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "218",
	core.ColorPurple:        "135",
}

// Palette turns cell colors into terminal styles.
type Palette []lipgloss.Style

// NewPalette builds a palette from the 256-color table.
func NewPalette() Palette {
	p := make(Palette, len(ansiCodes))
	for c, code := range ansiCodes {
		if code == "" {
			p[c] = lipgloss.NewStyle()
			continue
		}
		p[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPalette = NewPalette()

// Style returns the style for c; unknown colors render unstyled.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if int(c) >= len(p) {
		return p[core.ColorDefault]
	}
	return p[c]
}

// Render converts a Screen buffer to a styled string, one escape
// sequence per run of same-colored cells.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run.Reset()
		color := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color && run.Len() > 0 {
				p.flush(&sb, &run, color)
			}
			color = cell.Color
			run.WriteRune(cell.Rune)
		}
		p.flush(&sb, &run, color)
	}
	return sb.String()
}

func (p Palette) flush(sb, run *strings.Builder, c core.Color) {
	if run.Len() == 0 {
		return
	}
	if c == core.ColorDefault {
		sb.WriteString(run.String())
	} else {
		sb.WriteString(p.Style(c).Render(run.String()))
	}
	run.Reset()
}

// RenderScreen renders s with the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}
