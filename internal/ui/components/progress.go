package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// RateBar renders a fraction in [0, 1] as a horizontal bar followed by its
// percentage, e.g. a placement rate.
func RateBar(label string, rate float64, width int) string {
	var result string
	if label != "" {
		result = theme.Label.Render(label)
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(width-lipgloss.Width(result)-percentWidth, 4)

	filled := min(max(int(float64(barWidth)*rate), 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(rate*100+0.5)))
}
