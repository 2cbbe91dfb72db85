package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// MenuItem represents a single entry in a scrollable list.
type MenuItem struct {
	ID     string
	Label  string
	Detail string
	// Marked items are drawn with a bullet, e.g. the current selection.
	Marked bool
}

// Menu is a vertical, scrollable list with a cursor. Pressing enter calls
// OnChoose with the item under the cursor.
type Menu struct {
	Items    []MenuItem
	Cursor   int
	OnChoose func(MenuItem) tea.Cmd

	offset int
}

// NewMenu creates a menu over items.
func NewMenu(items []MenuItem, onChoose func(MenuItem) tea.Cmd) Menu {
	return Menu{Items: items, OnChoose: onChoose}
}

// SetItems replaces the items, keeping the cursor on the same ID when it
// is still present.
func (m *Menu) SetItems(items []MenuItem) {
	current := ""
	if m.Cursor >= 0 && m.Cursor < len(m.Items) {
		current = m.Items[m.Cursor].ID
	}
	m.Items = items
	m.Cursor = 0
	m.offset = 0
	m.MoveTo(current)
}

// MoveTo puts the cursor on the item with id. Unknown IDs leave the
// cursor where it is.
func (m *Menu) MoveTo(id string) {
	for i, it := range m.Items {
		if it.ID == id {
			m.Cursor = i
			return
		}
	}
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Cursor], true
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = len(m.Items) - 1
	case "enter":
		if it, ok := m.Current(); ok && m.OnChoose != nil {
			return m, m.OnChoose(it)
		}
	}
	return m, nil
}

// View renders at most height rows, scrolling to keep the cursor visible.
// Items with a detail take two rows.
func (m *Menu) View(width, height int) string {
	if len(m.Items) == 0 {
		return ""
	}
	rowsPer := 1
	for _, it := range m.Items {
		if it.Detail != "" {
			rowsPer = 2
			break
		}
	}
	visible := max(height/rowsPer, 1)
	if m.Cursor < m.offset {
		m.offset = m.Cursor
	}
	if m.Cursor >= m.offset+visible {
		m.offset = m.Cursor - visible + 1
	}

	var lines []string
	for i := m.offset; i < len(m.Items) && i < m.offset+visible; i++ {
		it := m.Items[i]
		prefix := "  "
		if it.Marked {
			prefix = "• "
		}
		label := truncate(prefix+it.Label, width)
		if i == m.Cursor {
			lines = append(lines, theme.Selected.Render("▸"+label))
		} else {
			lines = append(lines, theme.Unselected.Render(" "+label))
		}
		if rowsPer == 2 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+truncate(it.Detail, width-3)))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
