package explore

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// Drain runs cmd and every command it leads to outside of a Bubble Tea
// program. Commands run concurrently; their messages are handed to
// ctrl.Update one at a time, in arrival order. Drain returns once no
// command is outstanding, or with ctx's error if ctx ends first.
func Drain(ctx context.Context, ctrl *Controller, cmd tea.Cmd) error {
	msgs := make(chan tea.Msg)
	pending := 0

	launch := func(c tea.Cmd) {
		if c == nil {
			return
		}
		pending++
		go func() {
			msg := c()
			select {
			case msgs <- msg:
			case <-ctx.Done():
			}
		}()
	}

	launch(cmd)
	for pending > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-msgs:
			pending--
			switch m := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, c := range m {
					launch(c)
				}
			default:
				launch(ctrl.Update(m))
			}
		}
	}
	return nil
}
