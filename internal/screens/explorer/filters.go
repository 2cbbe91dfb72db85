package explorer

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/layout"
	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// Rows of the filter form, in display order.
const (
	rowEducation = iota
	rowBudget
	rowPathwayType
	rowLocation
	rowMinRanking
	rowApply
	rowCount
)

// FilterScreen edits the filter criteria. Values are validated on submit;
// a rejected value stays on screen with its reason and nothing is applied.
type FilterScreen struct {
	ctrl *explore.Controller

	education   components.Choice
	pathwayType components.Choice
	budget      components.TextInput
	location    components.TextInput
	minRanking  components.TextInput
	apply       components.Button

	row int
}

var _ screen.Screen = (*FilterScreen)(nil)

// NewFilterScreen creates a form seeded with ctrl's draft filter values.
func NewFilterScreen(ctrl *explore.Controller) *FilterScreen {
	draft := ctrl.Filters()

	types := make([]string, 0, len(catalog.PathwayTypes()))
	for _, t := range catalog.PathwayTypes() {
		types = append(types, string(t))
	}

	s := &FilterScreen{
		ctrl:        ctrl,
		education:   components.NewChoice(explore.EducationLevels(), draft.Value(explore.FieldEducationLevel)),
		pathwayType: components.NewChoice(types, strings.ToLower(draft.Value(explore.FieldPathwayType))),
		budget:      components.NewTextInput("any", draft.Value(explore.FieldBudget), true, 12),
		location:    components.NewTextInput("anywhere", draft.Value(explore.FieldLocation), false, 32),
		minRanking:  components.NewTextInput("any", draft.Value(explore.FieldMinRanking), true, 6),
	}
	s.apply = components.NewButton("Apply filters", s.submit)
	return s
}

func (s *FilterScreen) Init() tea.Cmd {
	return s.focusRow(rowEducation)
}

func (s *FilterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.forward(msg)
	}

	switch kmsg.String() {
	case "up", "shift+tab":
		return s, s.focusRow((s.row + rowCount - 1) % rowCount)
	case "down", "tab":
		return s, s.focusRow((s.row + 1) % rowCount)
	case "enter":
		if s.row == rowApply {
			var cmd tea.Cmd
			s.apply, cmd = s.apply.Update(msg)
			return s, cmd
		}
		return s, s.submit()
	case "ctrl+u":
		return s, s.clear()
	}
	return s, s.forward(msg)
}

// forward hands msg to the focused field.
func (s *FilterScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.row {
	case rowEducation:
		s.education, cmd = s.education.Update(msg)
	case rowPathwayType:
		s.pathwayType, cmd = s.pathwayType.Update(msg)
	case rowBudget:
		s.budget, cmd = s.budget.Update(msg)
	case rowLocation:
		s.location, cmd = s.location.Update(msg)
	case rowMinRanking:
		s.minRanking, cmd = s.minRanking.Update(msg)
	}
	return cmd
}

func (s *FilterScreen) focusRow(row int) tea.Cmd {
	s.row = row
	s.budget.Blur()
	s.location.Blur()
	s.minRanking.Blur()
	s.apply.Active = row == rowApply

	switch row {
	case rowBudget:
		return s.budget.Focus()
	case rowLocation:
		return s.location.Focus()
	case rowMinRanking:
		return s.minRanking.Focus()
	}
	return nil
}

// submit validates every field, then applies the filters and closes the
// form. Rejected fields keep their input and show the reason.
func (s *FilterScreen) submit() tea.Cmd {
	inputs := map[string]*components.TextInput{
		explore.FieldBudget:     &s.budget,
		explore.FieldLocation:   &s.location,
		explore.FieldMinRanking: &s.minRanking,
	}
	values := map[string]string{
		explore.FieldEducationLevel: s.education.Value(),
		explore.FieldPathwayType:    s.pathwayType.Value(),
	}
	for f, in := range inputs {
		in.SetProblem("")
		values[f] = in.Value()
	}

	failed := false
	for _, f := range explore.FilterFields() {
		err := s.ctrl.SetFilterField(f, values[f])
		if err == nil {
			continue
		}
		failed = true
		var ve *explore.ValidationError
		if in, ok := inputs[f]; ok && errors.As(err, &ve) {
			in.SetProblem(ve.Reason)
		}
	}
	if failed {
		return nil
	}

	return tea.Batch(
		s.ctrl.ApplyFilters(),
		func() tea.Msg { return router.PopScreenMsg{} },
	)
}

// clear resets every field; the change takes effect on submit.
func (s *FilterScreen) clear() tea.Cmd {
	s.education.Selected = -1
	s.pathwayType.Selected = -1
	for _, in := range []*components.TextInput{&s.budget, &s.location, &s.minRanking} {
		in.Model.SetValue("")
		in.SetProblem("")
	}
	return nil
}

func (s *FilterScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Filter pathways") + "\n")
	b.WriteString(theme.Hint.Render("Filters apply to the pathway and institution lists.") + "\n\n")

	row := func(r int, label, control string) {
		marker := "  "
		if r == s.row {
			marker = theme.Selected.Render("▸ ")
		}
		b.WriteString(marker + theme.Label.Render(label) + control + "\n\n")
	}
	row(rowEducation, "Education level", s.education.View(s.row == rowEducation))
	row(rowBudget, "Budget", s.budget.View())
	row(rowPathwayType, "Pathway type", s.pathwayType.View(s.row == rowPathwayType))
	row(rowLocation, "Location", s.location.View())
	row(rowMinRanking, "Min. ranking", s.minRanking.View())
	b.WriteString("  " + s.apply.View())

	return theme.PaneFocused.Width(max(width-4, 20)).Height(max(height-2, 1)).Render(b.String())
}

func (s *FilterScreen) Title() string {
	return "Filters"
}

// KeyHints returns the key binding hints for the footer.
func (s *FilterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Apply"},
		{Key: "Ctrl+U", Description: "Clear"},
		{Key: "Esc", Description: "Cancel"},
	}
}
