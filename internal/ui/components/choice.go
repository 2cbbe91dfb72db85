package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// Choice picks one of a fixed set of options, or none. Left and right
// cycle through "any" followed by the options.
type Choice struct {
	Options  []string
	Selected int // -1 means any
}

// NewChoice creates a Choice with value selected, or none if value is not
// one of options.
func NewChoice(options []string, value string) Choice {
	return Choice{Options: options, Selected: slices.Index(options, value)}
}

// Update handles left/right cycling.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	n := len(c.Options) + 1
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected+1+n-1)%n - 1
	case "right", "l", "space":
		c.Selected = (c.Selected+1+1)%n - 1
	case "backspace", "delete":
		c.Selected = -1
	}
	return c, nil
}

// Value returns the selected option, or "" for any.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders every option with the selected one highlighted.
func (c Choice) View(focused bool) string {
	parts := make([]string, 0, len(c.Options)+1)
	for i, opt := range append([]string{"any"}, c.Options...) {
		if i-1 == c.Selected {
			if focused {
				parts = append(parts, theme.TabActive.Render(opt))
			} else {
				parts = append(parts, theme.Selected.Render(opt))
			}
			continue
		}
		parts = append(parts, theme.TabInactive.Render(opt))
	}
	return strings.Join(parts, " ")
}
