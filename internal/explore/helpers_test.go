package explore

import (
	"encoding/json"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/catalog"
)

const testCareer = "eng"

func testProvider() *catalog.MockProvider {
	m := catalog.NewMockProvider()
	m.AddPathways(testCareer,
		catalog.Pathway{ID: "1", Name: "Pathway A", Type: catalog.PathwayDegree, Duration: "4 years",
			Cost: catalog.CostRange{Min: 100, Max: 900}, ExamIDs: []string{"jee", "cuet"}},
		catalog.Pathway{ID: "2", Name: "Pathway B", Type: catalog.PathwayBootcamp, Duration: "6 months",
			Cost: catalog.CostRange{Min: 50, Max: 80}},
	)
	m.AddCourses(
		catalog.Course{ID: "c1", PathwayID: "1", Name: "Algorithms", Topics: []string{"graphs"}},
		catalog.Course{ID: "c2", PathwayID: "1", Name: "Systems"},
		catalog.Course{ID: "c3", PathwayID: "1", Name: "Databases", Skills: []string{"sql"}},
		catalog.Course{ID: "c4", PathwayID: "2", Name: "React"},
	)
	m.AddInstitutions(
		catalog.InstitutionBinding{ID: "b1", PathwayID: "2", Fees: 70, Seats: 30,
			Institution: catalog.Institution{ID: "inst-x", Name: "X Academy", Location: "Pune", Ranking: 12}},
	)
	m.AddAdmissions(
		catalog.AdmissionProcess{ID: "ad1", InstitutionID: "inst-x", PathwayID: "2",
			Eligibility: json.RawMessage(`{"min_age":18}`), Tips: []string{"apply early"}},
	)
	m.AddExams(
		catalog.ExamInfo{ID: "jee", Name: "JEE"},
		catalog.ExamInfo{ID: "cuet", Name: "CUET"},
	)
	return m
}

func newTestController(t *testing.T, opts ...ControllerOption) (*Controller, *catalog.MockProvider) {
	t.Helper()
	p := testProvider()
	orch := NewOrchestrator(NewCache(), p)
	return NewController(orch, testCareer, opts...), p
}

// collect runs cmd, expanding batches, and returns the resulting messages
// without delivering them.
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

// settle delivers msgs and every message they lead to, in order.
func settle(ctrl *Controller, msgs ...tea.Msg) {
	for len(msgs) > 0 {
		m := msgs[0]
		msgs = msgs[1:]
		msgs = append(msgs, collect(ctrl.Update(m))...)
	}
}

// run executes cmd and settles everything it leads to.
func run(ctrl *Controller, cmd tea.Cmd) {
	settle(ctrl, collect(cmd)...)
}

// fetchedFor picks the fetch result for key out of msgs.
func fetchedFor(t *testing.T, msgs []tea.Msg, key ResourceKey) FetchedMsg {
	t.Helper()
	for _, m := range msgs {
		if f, ok := m.(FetchedMsg); ok && f.Key == key {
			return f
		}
	}
	t.Fatalf("no fetch result for %s among %d messages", key, len(msgs))
	return FetchedMsg{}
}
