package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MockCall records a single call made to a MockProvider.
type MockCall struct {
	Op    string
	Scope string
}

// MockProvider is an in-memory Provider backed by a fixed data set. It is
// used for tests and for running the explorer without a data service.
// Filters are applied the way the data service documents them: budget
// caps the pathway's minimum cost, location is a case-insensitive
// substring, min ranking keeps institutions ranked at or above it.
type MockProvider struct {
	mu sync.Mutex

	pathways     map[string][]Pathway            // by career ID
	courses      map[string][]Course             // by pathway ID
	institutions map[string][]InstitutionBinding // by pathway ID
	admissions   map[string][]AdmissionProcess   // by institution/pathway
	exams        map[string]ExamInfo             // by exam ID
	errs         map[MockCall]error

	Calls []MockCall
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		pathways:     make(map[string][]Pathway),
		courses:      make(map[string][]Course),
		institutions: make(map[string][]InstitutionBinding),
		admissions:   make(map[string][]AdmissionProcess),
		exams:        make(map[string]ExamInfo),
		errs:         make(map[MockCall]error),
	}
}

// AddPathways registers pathways for a career.
func (m *MockProvider) AddPathways(careerID string, pathways ...Pathway) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pathways[careerID] = append(m.pathways[careerID], pathways...)
}

// AddCourses registers courses under their PathwayID.
func (m *MockProvider) AddCourses(courses ...Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range courses {
		m.courses[c.PathwayID] = append(m.courses[c.PathwayID], c)
	}
}

// AddInstitutions registers institution bindings under their PathwayID.
func (m *MockProvider) AddInstitutions(bindings ...InstitutionBinding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range bindings {
		m.institutions[b.PathwayID] = append(m.institutions[b.PathwayID], b)
	}
}

// AddAdmissions registers admission processes under their institution and
// pathway.
func (m *MockProvider) AddAdmissions(processes ...AdmissionProcess) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range processes {
		k := admissionScope(p.InstitutionID, p.PathwayID)
		m.admissions[k] = append(m.admissions[k], p)
	}
}

// AddExams registers exam details.
func (m *MockProvider) AddExams(exams ...ExamInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range exams {
		m.exams[e.ID] = e
	}
}

// FailWith makes calls of op with the given scope return err until cleared
// with a nil err. Scopes are the career ID, pathway ID, "institution/pathway"
// or the comma-joined exam IDs, matching the recorded MockCall.
func (m *MockProvider) FailWith(op, scope string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := MockCall{Op: op, Scope: scope}
	if err == nil {
		delete(m.errs, k)
		return
	}
	m.errs[k] = err
}

// CallCount returns the number of calls made for op, or all calls when op
// is empty.
func (m *MockProvider) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if op == "" {
		return len(m.Calls)
	}
	n := 0
	for _, c := range m.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// CallsFor returns the calls recorded for op.
func (m *MockProvider) CallsFor(op string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockCall
	for _, c := range m.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockProvider) ListPathways(ctx context.Context, careerID string, filters Filters) ([]Pathway, error) {
	if err := m.begin(ctx, OpListPathways, careerID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Pathway{}
	for _, p := range m.pathways[careerID] {
		if filters.PathwayType != "" && p.Type != filters.PathwayType {
			continue
		}
		if filters.HasBudget && p.Cost.Min > filters.Budget {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *MockProvider) ListCourses(ctx context.Context, pathwayID string) ([]Course, error) {
	if err := m.begin(ctx, OpListCourses, pathwayID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Course{}, m.courses[pathwayID]...), nil
}

func (m *MockProvider) ListInstitutions(ctx context.Context, pathwayID string, filters Filters) ([]InstitutionBinding, error) {
	if err := m.begin(ctx, OpListInstitutions, pathwayID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []InstitutionBinding{}
	loc := strings.ToLower(filters.Location)
	for _, b := range m.institutions[pathwayID] {
		if loc != "" && !strings.Contains(strings.ToLower(b.Institution.Location), loc) {
			continue
		}
		if filters.MinRanking > 0 && (b.Institution.Ranking == 0 || b.Institution.Ranking > filters.MinRanking) {
			continue
		}
		if filters.HasBudget && b.Fees > filters.Budget {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *MockProvider) ListAdmissionProcesses(ctx context.Context, institutionID, pathwayID string) ([]AdmissionProcess, error) {
	scope := admissionScope(institutionID, pathwayID)
	if err := m.begin(ctx, OpListAdmissions, scope); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AdmissionProcess{}, m.admissions[scope]...), nil
}

func (m *MockProvider) GetExamInfo(ctx context.Context, examIDs []string) ([]ExamInfo, error) {
	if err := m.begin(ctx, OpGetExamInfo, strings.Join(examIDs, ",")); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []ExamInfo{}
	seen := make([]string, 0, len(examIDs))
	for _, id := range examIDs {
		e, ok := m.exams[id]
		if !ok || slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)
		out = append(out, e)
	}
	return out, nil
}

// begin records the call and returns any configured failure.
func (m *MockProvider) begin(ctx context.Context, op, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := MockCall{Op: op, Scope: scope}
	m.Calls = append(m.Calls, call)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.errs[call]; ok {
		return err
	}
	return nil
}

func admissionScope(institutionID, pathwayID string) string {
	return fmt.Sprintf("%s/%s", institutionID, pathwayID)
}
