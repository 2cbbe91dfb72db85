package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screens/explorer"
)

func newTestModel(t *testing.T) (AppModel, *catalog.MockProvider) {
	t.Helper()
	p := catalog.SampleProvider()
	orch := explore.NewOrchestrator(explore.NewCache(), p)
	ctrl := explore.NewController(orch, catalog.SampleCareerID)
	m := newAppModel(Options{Controller: ctrl})
	return m, p
}

// runCmd executes cmd and feeds every resulting message back into m,
// expanding batches, until nothing is left.
func runCmd(m AppModel, cmd tea.Cmd) AppModel {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		updated, next := m.Update(msg)
		m = updated.(AppModel)
		queue = append(queue, next)
	}
	return m
}

func resize(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestInitLoadsFirstPathway(t *testing.T) {
	m, p := newTestModel(t)
	m = resize(m, 120, 40)

	m = runCmd(m, m.Init())

	require.NotEmpty(t, m.ctrl.State().PathwayID)
	assert.Equal(t, 1, p.CallCount(catalog.OpListPathways))

	out := m.render()
	assert.Contains(t, out, "Explore pathways")
	assert.Contains(t, out, catalog.SampleCareerID)
	assert.Contains(t, out, "B.Tech in Computer Science")
}

func TestRenderTooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	m = resize(m, 40, 10)

	assert.Contains(t, m.render(), "Terminal too small!")
}

func TestRenderBeforeResize(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Empty(t, m.render())
}

func TestStatusCountsLoadingRegions(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.ctrl.Start()
	assert.Contains(t, m.status(), "⟳ 1")

	m = runCmd(m, cmd)
	assert.NotContains(t, m.status(), "⟳")
}

func TestFetchesReachControllerUnderFilterScreen(t *testing.T) {
	m, _ := newTestModel(t)
	m = resize(m, 120, 40)

	cmd := m.ctrl.Start()
	updated, _ := m.Update(router.PushScreenMsg{Screen: explorer.NewFilterScreen(m.ctrl)})
	m = updated.(AppModel)
	require.Equal(t, 2, m.router.Depth())

	m = runCmd(m, cmd)

	assert.Equal(t, explore.RegionLoaded, m.ctrl.View().Pathways.State)
	assert.Contains(t, m.render(), "Filters")
}

func TestEscPopsPushedScreen(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the root screen does nothing")

	updated, _ := m.Update(router.PushScreenMsg{Screen: explorer.NewFilterScreen(m.ctrl)})
	m = updated.(AppModel)

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
