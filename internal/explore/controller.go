package explore

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/store"
)

// ErrNoPathwaySelected is returned when an intent needs a selected pathway.
var ErrNoPathwaySelected = errors.New("no pathway selected")

// Controller owns the selection state (pathway, institution, tab and
// applied filters) and turns intents into fetches. After each change it
// recomputes the required keys and ensures only the newly required ones.
//
// Intents and Update must be called from the event loop; they return the
// commands that perform the fetches.
type Controller struct {
	orch    *Orchestrator
	filters *FilterStore
	logger  *zap.Logger

	sessionID       string
	state           State
	required        keySet
	autoSelectFirst bool
	pendingAuto     bool
	onChange        func(store.SessionState)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithAutoSelectFirst selects the first pathway of a freshly loaded list
// when nothing is selected.
func WithAutoSelectFirst(on bool) ControllerOption {
	return func(c *Controller) {
		c.autoSelectFirst = on
	}
}

// WithOnChange registers a hook called with the session state after every
// change.
func WithOnChange(fn func(store.SessionState)) ControllerOption {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithSession restores a saved session. Invalid filter values in it are
// dropped and logged.
func WithSession(s *store.SessionState) ControllerOption {
	return func(c *Controller) {
		if s == nil {
			return
		}
		c.sessionID = s.SessionID
		if s.CareerID != "" {
			c.state.CareerID = s.CareerID
		}
		if err := c.filters.Load(s.Filters); err != nil {
			c.logger.Warn("dropping invalid saved filters", zap.Error(err))
		}
		c.state.Filters = c.filters.Apply()
		c.state.PathwayID = s.PathwayID
		if s.PathwayID != "" {
			c.state.InstitutionID = s.InstitutionID
		}
		if t, err := ParseTab(s.Tab); err == nil {
			c.state.Tab = t
		}
	}
}

// WithSessionID sets the identifier reported in session state.
func WithSessionID(id string) ControllerOption {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// NewController creates a Controller for careerID.
func NewController(orch *Orchestrator, careerID string, opts ...ControllerOption) *Controller {
	c := &Controller{
		orch:            orch,
		filters:         NewFilterStore(),
		logger:          orch.logger,
		state:           State{CareerID: careerID},
		required:        make(keySet),
		autoSelectFirst: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current selection state.
func (c *Controller) State() State {
	return c.state
}

// Cache returns the cache backing the controller.
func (c *Controller) Cache() *Cache {
	return c.orch.cache
}

// Filters returns the filter store holding draft values.
func (c *Controller) Filters() *FilterStore {
	return c.filters
}

// Required reports whether key is currently required by the view.
func (c *Controller) Required(key ResourceKey) bool {
	return c.required.has(key)
}

// View projects the current state.
func (c *Controller) View() View {
	return Project(c.state, c.orch.cache)
}

// Start requires the initial resources. With nothing selected, the first
// pathway is picked once the list arrives.
func (c *Controller) Start() tea.Cmd {
	if c.state.PathwayID == "" {
		c.pendingAuto = c.autoSelectFirst
	}
	return tea.Batch(c.reconcile(), c.maybeAutoSelect())
}

// SelectPathway selects a pathway, clears the institution and drops every
// resource scoped to another pathway.
func (c *Controller) SelectPathway(id string) tea.Cmd {
	c.pendingAuto = false
	c.state.PathwayID = id
	c.state.InstitutionID = ""

	c.orch.InvalidateAndRefetch(func(k ResourceKey) bool {
		return k.PerPathway() && k.PathwayID != id
	}, nil)
	return c.reconcile()
}

// SelectInstitution selects an institution of the current pathway and
// requires its admission processes.
func (c *Controller) SelectInstitution(id string) (tea.Cmd, error) {
	if c.state.PathwayID == "" {
		return nil, ErrNoPathwaySelected
	}
	prev := c.state.InstitutionID
	c.state.InstitutionID = id
	if prev != "" && prev != id {
		old := AdmissionsKey(prev, c.state.PathwayID)
		c.orch.InvalidateAndRefetch(func(k ResourceKey) bool { return k == old }, nil)
	}
	return c.reconcile(), nil
}

// SetTab switches the active tab and fetches what it needs, if anything.
func (c *Controller) SetTab(tab Tab) tea.Cmd {
	c.state.Tab = tab
	return c.reconcile()
}

// SetFilterField validates and stores a draft filter value. Nothing is
// fetched until ApplyFilters.
func (c *Controller) SetFilterField(field, value string) error {
	return c.filters.SetFilter(field, value)
}

// ApplyFilters makes the draft filters current. The pathway list and
// institution lists for other filter scopes are dropped and the selection
// is cleared; the first pathway of the new list is selected when it
// arrives, if auto-select is on. Applying unchanged filters does nothing.
func (c *Controller) ApplyFilters() tea.Cmd {
	snap := c.filters.Apply()
	if snap == c.state.Filters {
		return nil
	}

	c.state.Filters = snap
	c.state.PathwayID = ""
	c.state.InstitutionID = ""
	c.pendingAuto = c.autoSelectFirst

	c.orch.InvalidateAndRefetch(func(k ResourceKey) bool {
		return (k.Kind == KindPathways || k.Kind == KindInstitutions) && k.Filters != snap
	}, nil)
	return tea.Batch(c.reconcile(), c.maybeAutoSelect())
}

// Retry re-issues the fetch for key if it is in the Error state.
func (c *Controller) Retry(key ResourceKey) tea.Cmd {
	if c.orch.cache.Get(key).Status != StatusError {
		return nil
	}
	return c.orch.Ensure(key)
}

// RetryFailed retries every required key currently in the Error state.
func (c *Controller) RetryFailed() tea.Cmd {
	var cmds []tea.Cmd
	for _, k := range RequiredKeys(c.state) {
		if c.required.has(k) {
			cmds = append(cmds, c.Retry(k))
		}
	}
	return tea.Batch(cmds...)
}

// Refresh drops and refetches everything the view currently shows. Exams
// whose IDs went with the evicted pathway list wait for the new list.
func (c *Controller) Refresh() tea.Cmd {
	refetch := func(k ResourceKey) bool {
		if !c.required.has(k) {
			return false
		}
		if k.Kind == KindExams && !c.orch.ExamsResolvable(k) {
			delete(c.required, k)
			return false
		}
		return true
	}
	return c.orch.InvalidateAndRefetch(c.required.has, refetch)
}

// Update applies fetch results. Other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(FetchedMsg)
	if !ok {
		return nil
	}
	if !c.orch.Apply(m) {
		return nil
	}
	if m.Key.Kind != KindPathways || m.Key != PathwaysKey(c.state.CareerID, c.state.Filters) {
		return nil
	}
	// Exams need the pathway list to resolve their IDs; pick up any that
	// were waiting for it.
	return tea.Batch(c.maybeAutoSelect(), c.reconcile())
}

// maybeAutoSelect selects the first pathway once the current list is
// loaded and non-empty, if an auto-select is pending. A failed list keeps
// it pending until a retry loads it.
func (c *Controller) maybeAutoSelect() tea.Cmd {
	if !c.pendingAuto {
		return nil
	}
	e := c.orch.cache.Get(PathwaysKey(c.state.CareerID, c.state.Filters))
	if e.Status != StatusLoaded {
		return nil
	}
	c.pendingAuto = false
	pathways := e.Data.([]catalog.Pathway)
	if len(pathways) == 0 {
		return nil
	}
	c.logger.Debug("auto-selecting first pathway", zap.String("pathway", pathways[0].ID))
	return c.SelectPathway(pathways[0].ID)
}

// reconcile recomputes the required set and ensures newly required keys.
func (c *Controller) reconcile() tea.Cmd {
	next := make(keySet)
	var cmds []tea.Cmd
	for _, k := range RequiredKeys(c.state) {
		// Not counted as required yet, so it is ensured once the
		// pathway list that names its exams arrives.
		if k.Kind == KindExams && !c.orch.ExamsResolvable(k) {
			continue
		}
		next.add(k)
		if !c.required.has(k) {
			cmds = append(cmds, c.orch.Ensure(k))
		}
	}
	c.required = next
	c.notify()
	return tea.Batch(cmds...)
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.SessionState())
}

// SessionState returns the persistable form of the current state.
func (c *Controller) SessionState() store.SessionState {
	return store.SessionState{
		SessionID:     c.sessionID,
		CareerID:      c.state.CareerID,
		Filters:       c.filters.AppliedFields(),
		PathwayID:     c.state.PathwayID,
		InstitutionID: c.state.InstitutionID,
		Tab:           c.state.Tab.String(),
	}
}

func (c *Controller) String() string {
	return fmt.Sprintf("explore(%s pathway=%q institution=%q tab=%s filters=%s)",
		c.state.CareerID, c.state.PathwayID, c.state.InstitutionID, c.state.Tab, c.state.Filters)
}
