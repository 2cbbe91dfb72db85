package explorer

import (
	"fmt"
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

type focus int

const (
	focusList focus = iota
	focusDetail
)

// ExplorerScreen shows the pathway list next to the selected pathway's
// tabs. It renders from the controller's view on every frame and turns
// keys into controller intents.
type ExplorerScreen struct {
	ctrl *explore.Controller

	pathways     components.Menu
	institutions components.Menu
	focus        focus

	// lastPathway is the selection seen at the previous sync, so the list
	// cursor follows selections made elsewhere (auto-select, restore).
	lastPathway string
	notice      string
}

var _ screen.Screen = (*ExplorerScreen)(nil)

// New creates an ExplorerScreen driving ctrl.
func New(ctrl *explore.Controller) *ExplorerScreen {
	s := &ExplorerScreen{ctrl: ctrl}
	s.pathways = components.NewMenu(nil, func(it components.MenuItem) tea.Cmd {
		s.focus = focusDetail
		return s.ctrl.SelectPathway(it.ID)
	})
	s.institutions = components.NewMenu(nil, func(it components.MenuItem) tea.Cmd {
		cmd, err := s.ctrl.SelectInstitution(it.ID)
		if err != nil {
			s.notice = err.Error()
			return nil
		}
		return tea.Batch(cmd, s.ctrl.SetTab(explore.TabAdmission))
	})
	s.sync()
	return s
}

func (s *ExplorerScreen) Init() tea.Cmd {
	return nil
}

func (s *ExplorerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explore.FetchedMsg:
		s.sync()
	case tea.KeyMsg:
		cmd := s.handleKey(msg)
		s.sync()
		return s, cmd
	}
	return s, nil
}

func (s *ExplorerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	s.notice = ""
	state := s.ctrl.State()

	switch key := msg.String(); key {
	case "tab":
		return s.ctrl.SetTab(shiftTab(state.Tab, 1))
	case "shift+tab":
		return s.ctrl.SetTab(shiftTab(state.Tab, -1))
	case "1", "2", "3", "4", "5":
		return s.ctrl.SetTab(explore.Tabs()[key[0]-'1'])
	case "left", "h":
		s.focus = focusList
		return nil
	case "right", "l":
		if state.PathwayID == "" {
			s.notice = explore.ErrNoPathwaySelected.Error()
			return nil
		}
		s.focus = focusDetail
		return nil
	case "f":
		return func() tea.Msg { return router.PushScreenMsg{Screen: NewFilterScreen(s.ctrl)} }
	case "r":
		cmd := s.ctrl.RetryFailed()
		if cmd == nil {
			s.notice = "nothing to retry"
		}
		return cmd
	case "ctrl+r":
		return s.ctrl.Refresh()
	}

	if s.focus == focusDetail && s.institutionsListed() {
		var cmd tea.Cmd
		s.institutions, cmd = s.institutions.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	s.pathways, cmd = s.pathways.Update(msg)
	return cmd
}

// institutionsListed reports whether the active tab shows a pickable
// institution list.
func (s *ExplorerScreen) institutionsListed() bool {
	switch s.ctrl.State().Tab {
	case explore.TabInstitutions, explore.TabAdmission:
		return true
	}
	return false
}

// sync rebuilds the list items from the controller's view.
func (s *ExplorerScreen) sync() {
	v := s.ctrl.View()

	items := make([]components.MenuItem, 0, len(v.Pathways.Items))
	for _, p := range v.Pathways.Items {
		items = append(items, components.MenuItem{
			ID:     p.ID,
			Label:  p.Name,
			Detail: fmt.Sprintf("%s · %s · %s", p.Type, p.Duration, costRange(p.Cost)),
			Marked: p.ID == v.State.PathwayID,
		})
	}
	s.pathways.SetItems(items)
	if v.State.PathwayID != s.lastPathway {
		s.pathways.MoveTo(v.State.PathwayID)
		s.lastPathway = v.State.PathwayID
	}
	if v.State.PathwayID == "" {
		s.focus = focusList
	}

	insts := make([]components.MenuItem, 0, len(v.Institutions.Items))
	for _, b := range v.Institutions.Items {
		insts = append(insts, components.MenuItem{
			ID:     b.Institution.ID,
			Label:  b.Institution.Name,
			Detail: b.Institution.Location,
			Marked: b.Institution.ID == v.State.InstitutionID,
		})
	}
	s.institutions.SetItems(insts)
}

func (s *ExplorerScreen) View(width, height int) string {
	s.sync()
	v := s.ctrl.View()

	listHeight := max(height-2, 1)
	list := renderRegion(v.Pathways, "No pathways match these filters. Press f to change them.",
		func([]catalog.Pathway) string { return s.pathways.View(layout.ListWidth, listHeight) })
	if !v.State.Filters.IsZero() {
		list = theme.Hint.Render("filters "+v.State.Filters.String()) + "\n\n" + list
	}

	detailWidth := max(width-layout.ListWidth-8, 10)
	detail := s.renderDetail(v, detailWidth, listHeight)
	if s.notice != "" {
		detail = theme.Failure.Render(s.notice) + "\n\n" + detail
	}

	return layout.SplitPanes(list, detail, width, height, s.focus == focusDetail)
}

func (s *ExplorerScreen) Title() string {
	return "Explore pathways"
}

// Status shows the career and how many regions are still loading.
func (s *ExplorerScreen) Status() string {
	v := s.ctrl.View()
	status := v.State.CareerID
	if n := loadingCount(v); n > 0 {
		status += fmt.Sprintf("  ⟳ %d", n)
	}
	return status
}

func loadingCount(v explore.View) int {
	n := 0
	for _, st := range []explore.RegionState{
		v.Pathways.State, v.Courses.State, v.Institutions.State, v.Admissions.State, v.Exams.State,
	} {
		if st == explore.RegionLoading {
			n++
		}
	}
	return n
}

// KeyHints returns the key binding hints for the footer.
func (s *ExplorerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Section"},
		{Key: "←→", Description: "Pane"},
		{Key: "f", Description: "Filters"},
	}
	if len(s.ctrl.View().Failed()) > 0 {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *ExplorerScreen) renderDetail(v explore.View, width, height int) string {
	if v.State.PathwayID == "" {
		return theme.Hint.Render("Select a pathway to see its details.")
	}

	var b strings.Builder
	b.WriteString(renderTabs(v.State.Tab))
	b.WriteString("\n\n")

	switch v.State.Tab {
	case explore.TabOverview:
		b.WriteString(renderOverview(v, width))
	case explore.TabCourses:
		b.WriteString(renderRegion(v.Courses, "No courses listed for this pathway.", renderCourses))
	case explore.TabInstitutions:
		b.WriteString(renderRegion(v.Institutions, "No institutions offer this pathway with these filters.",
			func(items []catalog.InstitutionBinding) string {
				return s.institutions.View(width, height-4) + "\n\n" + renderInstitutionCard(s.cursorInstitution(items))
			}))
	case explore.TabAdmission:
		b.WriteString(s.renderAdmissionTab(v, width, height))
	case explore.TabExams:
		b.WriteString(renderRegion(v.Exams, "This pathway requires no entrance exams.", renderExams))
	}
	return b.String()
}

func (s *ExplorerScreen) renderAdmissionTab(v explore.View, width, height int) string {
	if v.Admissions.State == explore.RegionNeedsInstitution {
		if v.Institutions.State == explore.RegionNotRequested {
			return renderRegion(v.Admissions, "", nil) + "\n\n" +
				theme.Hint.Render("Open the Institutions tab (3) to load them.")
		}
		picker := renderRegion(v.Institutions, "No institutions offer this pathway with these filters.",
			func([]catalog.InstitutionBinding) string { return s.institutions.View(width, height-6) })
		return renderRegion(v.Admissions, "", nil) + "\n\n" + picker
	}

	var b strings.Builder
	if v.Institution != nil {
		b.WriteString(theme.Title.Render(v.Institution.Institution.Name))
		b.WriteString("\n\n")
	}
	b.WriteString(renderRegion(v.Admissions, "No admission process published for this institution.", renderAdmissions))
	return b.String()
}

func (s *ExplorerScreen) cursorInstitution(items []catalog.InstitutionBinding) *catalog.InstitutionBinding {
	it, ok := s.institutions.Current()
	if !ok {
		return nil
	}
	for i := range items {
		if items[i].Institution.ID == it.ID {
			return &items[i]
		}
	}
	return nil
}

func shiftTab(t explore.Tab, delta int) explore.Tab {
	tabs := explore.Tabs()
	n := len(tabs)
	return tabs[((int(t)+delta)%n+n)%n]
}
