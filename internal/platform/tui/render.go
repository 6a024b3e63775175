package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deep-field/internal/core"
)

type cellColors struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a colour pair. Empty colours keep
// the terminal default.
func styleFor(c cellColors) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.fg != core.ColorDefault {
		style = style.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != core.ColorDefault {
		style = style.Background(lipgloss.Color(c.bg))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellColors]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellColors{cell.Fg, cell.Bg}

			// Collect consecutive cells with same colours
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = styleFor(start)
				styles[start] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
