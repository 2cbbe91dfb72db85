package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/ui/layout"
)

// Screen is one page of the explorer. Screens keep no copy of explorer
// data; they render from the controller they were built with.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	// Screens below the top of the stack also receive fetch results.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that supply their
// own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// on the right of the header.
type StatusProvider interface {
	Status() string
}
