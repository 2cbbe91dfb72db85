package explore

import (
	"fmt"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// Tab is a section of the pathway detail view.
type Tab int

const (
	TabOverview Tab = iota
	TabCourses
	TabInstitutions
	TabAdmission
	TabExams
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabCourses, TabInstitutions, TabAdmission, TabExams}
}

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "overview"
	case TabCourses:
		return "courses"
	case TabInstitutions:
		return "institutions"
	case TabAdmission:
		return "admission"
	case TabExams:
		return "exams"
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

func (t Tab) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Label returns the tab's display name.
func (t Tab) Label() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabCourses:
		return "Courses"
	case TabInstitutions:
		return "Institutions"
	case TabAdmission:
		return "Admission"
	case TabExams:
		return "Exams"
	}
	return t.String()
}

// ParseTab converts a tab name as produced by String.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if t.String() == s {
			return t, nil
		}
	}
	return TabOverview, fmt.Errorf("unknown tab %q", s)
}

// State is everything the required keys and the view depend on besides
// the cache.
type State struct {
	CareerID      string
	Filters       catalog.Filters
	PathwayID     string
	InstitutionID string
	Tab           Tab
}

// RequiredKeys returns the resource keys the current view needs, in a
// stable order. The pathway list is always needed; dependent resources
// only for the active tab, so unvisited tabs are never fetched.
func RequiredKeys(s State) []ResourceKey {
	keys := []ResourceKey{PathwaysKey(s.CareerID, s.Filters)}
	if s.PathwayID == "" {
		return keys
	}

	p := s.PathwayID
	switch s.Tab {
	case TabOverview:
		keys = append(keys, CoursesKey(p), InstitutionsKey(p, s.Filters))
	case TabCourses:
		keys = append(keys, CoursesKey(p))
	case TabInstitutions:
		keys = append(keys, InstitutionsKey(p, s.Filters))
	case TabExams:
		keys = append(keys, ExamsKey(p))
	}

	// Picking an institution is an explicit request for its admission
	// process, whatever the tab. Without one the Admission tab needs
	// nothing.
	if s.InstitutionID != "" {
		keys = append(keys, AdmissionsKey(s.InstitutionID, p))
	}
	return keys
}
