package explorer

import (
	"encoding/json"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/ui/layout"
)

func testProvider() *catalog.MockProvider {
	m := catalog.NewMockProvider()
	m.AddPathways("eng",
		catalog.Pathway{ID: "1", Name: "Computer Science", Type: catalog.PathwayDegree, Duration: "4 years",
			Cost: catalog.CostRange{Min: 100, Max: 900}},
		catalog.Pathway{ID: "2", Name: "Web Bootcamp", Type: catalog.PathwayBootcamp, Duration: "6 months",
			Cost: catalog.CostRange{Min: 50, Max: 80}},
	)
	m.AddCourses(
		catalog.Course{ID: "c1", PathwayID: "1", Name: "Algorithms"},
		catalog.Course{ID: "c2", PathwayID: "2", Name: "React"},
	)
	m.AddInstitutions(
		catalog.InstitutionBinding{ID: "b1", PathwayID: "2", Fees: 70,
			Institution: catalog.Institution{ID: "inst-x", Name: "Xavier Academy", Location: "Pune", Ranking: 12}},
	)
	m.AddAdmissions(
		catalog.AdmissionProcess{ID: "ad1", InstitutionID: "inst-x", PathwayID: "2",
			Eligibility: json.RawMessage(`{"min_age":18}`), Tips: []string{"apply early"}},
	)
	return m
}

func newTestScreen(t *testing.T, autoSelect bool) (*ExplorerScreen, *explore.Controller, *catalog.MockProvider) {
	t.Helper()
	p := testProvider()
	orch := explore.NewOrchestrator(explore.NewCache(), p)
	ctrl := explore.NewController(orch, "eng", explore.WithAutoSelectFirst(autoSelect))
	s := New(ctrl)
	pump(s, ctrl, ctrl.Start())
	return s, ctrl, p
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// collect runs cmd, expanding batches, and returns the resulting messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump delivers fetch results from cmd to the controller and the screen
// the way the app does, and returns every other message.
func pump(s screen.Screen, ctrl *explore.Controller, cmd tea.Cmd) []tea.Msg {
	var rest []tea.Msg
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if f, ok := msg.(explore.FetchedMsg); ok {
			queue = append(queue, collect(ctrl.Update(f))...)
			_, c := s.Update(f)
			queue = append(queue, collect(c)...)
			continue
		}
		rest = append(rest, msg)
	}
	return rest
}

func press(s *ExplorerScreen, ctrl *explore.Controller, msg tea.KeyPressMsg) []tea.Msg {
	_, cmd := s.Update(msg)
	return pump(s, ctrl, cmd)
}

func TestStartShowsFirstPathway(t *testing.T) {
	s, ctrl, _ := newTestScreen(t, true)

	assert.Equal(t, "1", ctrl.State().PathwayID)
	view := s.View(120, 40)
	assert.Contains(t, view, "Computer Science")
	assert.Contains(t, view, "Web Bootcamp")
	assert.Contains(t, view, "Overview")
}

func TestNoSelectionPrompt(t *testing.T) {
	s, ctrl, _ := newTestScreen(t, false)

	assert.Empty(t, ctrl.State().PathwayID)
	assert.Contains(t, s.View(120, 40), "Select a pathway")
}

func TestEnterSelectsPathwayUnderCursor(t *testing.T) {
	s, ctrl, p := newTestScreen(t, false)

	press(s, ctrl, specialKey(tea.KeyDown))
	press(s, ctrl, specialKey(tea.KeyEnter))

	assert.Equal(t, "2", ctrl.State().PathwayID)
	assert.Equal(t, focusDetail, s.focus)
	assert.Equal(t, 1, p.CallCount(catalog.OpListCourses))
	assert.Equal(t, 1, p.CallCount(catalog.OpListInstitutions))
}

func TestTabKeys(t *testing.T) {
	s, ctrl, p := newTestScreen(t, true)

	press(s, ctrl, keyPress('2'))
	assert.Equal(t, explore.TabCourses, ctrl.State().Tab)
	assert.Contains(t, s.View(120, 40), "Algorithms")

	press(s, ctrl, specialKey(tea.KeyTab))
	assert.Equal(t, explore.TabInstitutions, ctrl.State().Tab)

	press(s, ctrl, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, explore.TabCourses, ctrl.State().Tab)

	press(s, ctrl, keyPress('1'))
	press(s, ctrl, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, explore.TabExams, ctrl.State().Tab)

	// Courses were cached by the overview; switching tabs refetches nothing.
	assert.Equal(t, 1, p.CallCount(catalog.OpListCourses))
}

func TestRightWithoutPathwayShowsNotice(t *testing.T) {
	s, ctrl, _ := newTestScreen(t, false)

	press(s, ctrl, keyPress('l'))
	assert.Equal(t, focusList, s.focus)
	assert.Contains(t, s.View(120, 40), explore.ErrNoPathwaySelected.Error())
}

func TestAdmissionTabAsksForInstitution(t *testing.T) {
	s, ctrl, p := newTestScreen(t, true)
	pump(s, ctrl, ctrl.SelectPathway("2"))

	press(s, ctrl, keyPress('4'))
	assert.Equal(t, explore.TabAdmission, ctrl.State().Tab)
	view := s.View(120, 40)
	assert.Contains(t, view, "Pick an institution")
	assert.Contains(t, view, "Xavier Academy")
	assert.Zero(t, p.CallCount(catalog.OpListAdmissions))

	press(s, ctrl, keyPress('l'))
	press(s, ctrl, specialKey(tea.KeyEnter))

	assert.Equal(t, "inst-x", ctrl.State().InstitutionID)
	assert.Equal(t, 1, p.CallCount(catalog.OpListAdmissions))
	view = s.View(120, 40)
	assert.Contains(t, view, "apply early")
	assert.Contains(t, view, "min_age")
}

func TestAdmissionTabWithoutInstitutionsLoaded(t *testing.T) {
	s, ctrl, p := newTestScreen(t, true)
	press(s, ctrl, keyPress('2'))
	pump(s, ctrl, ctrl.SelectPathway("2"))
	before := p.CallCount("")

	press(s, ctrl, keyPress('4'))

	assert.Equal(t, before, p.CallCount(""))
	view := s.View(120, 40)
	assert.Contains(t, view, "Pick an institution")
	assert.Contains(t, view, "Open the Institutions tab")
	assert.NotContains(t, view, "Xavier Academy")
}

func TestFailedRegionAndRetry(t *testing.T) {
	p := testProvider()
	p.FailWith(catalog.OpListCourses, "1", &catalog.StatusError{Code: 503, Message: "courses offline"})
	ctrl := explore.NewController(explore.NewOrchestrator(explore.NewCache(), p), "eng")
	s := New(ctrl)
	pump(s, ctrl, ctrl.Start())

	press(s, ctrl, keyPress('2'))
	view := s.View(120, 40)
	assert.Contains(t, view, "courses offline")
	assert.Contains(t, view, "Press r to retry")
	assert.Contains(t, s.KeyHints(), layout.KeyHint{Key: "r", Description: "Retry"})

	p.FailWith(catalog.OpListCourses, "1", nil)
	press(s, ctrl, keyPress('r'))

	assert.Contains(t, s.View(120, 40), "Algorithms")
	assert.NotContains(t, s.KeyHints(), layout.KeyHint{Key: "r", Description: "Retry"})
	assert.Equal(t, 2, p.CallCount(catalog.OpListCourses))
}

func TestRetryWithNothingFailed(t *testing.T) {
	s, _, _ := newTestScreen(t, true)

	_, cmd := s.Update(keyPress('r'))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(120, 40), "nothing to retry")
}

func TestRefreshRefetchesRequired(t *testing.T) {
	s, ctrl, p := newTestScreen(t, true)
	before := p.CallCount("")

	press(s, ctrl, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})

	// pathways, courses and institutions of the overview
	assert.Equal(t, before+3, p.CallCount(""))
}

func TestFilterKeyOpensForm(t *testing.T) {
	s, ctrl, _ := newTestScreen(t, true)

	msgs := press(s, ctrl, keyPress('f'))
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msgs[0])
	assert.IsType(t, &FilterScreen{}, push.Screen)
}

func TestShiftTabWraps(t *testing.T) {
	tests := []struct {
		from  explore.Tab
		delta int
		want  explore.Tab
	}{
		{explore.TabOverview, 1, explore.TabCourses},
		{explore.TabExams, 1, explore.TabOverview},
		{explore.TabOverview, -1, explore.TabExams},
		{explore.TabAdmission, -1, explore.TabInstitutions},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shiftTab(tt.from, tt.delta), "%s%+d", tt.from, tt.delta)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		250000:    "250,000",
		1234567.4: "1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatAmount(in))
	}
}
