package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// PathwayType classifies how a pathway is delivered.
type PathwayType string

const (
	PathwayDegree        PathwayType = "degree"
	PathwayBootcamp      PathwayType = "bootcamp"
	PathwayCertification PathwayType = "certification"
	PathwayDiploma       PathwayType = "diploma"
)

// PathwayTypes returns every known pathway type in display order.
func PathwayTypes() []PathwayType {
	return []PathwayType{PathwayDegree, PathwayBootcamp, PathwayCertification, PathwayDiploma}
}

// ParsePathwayType converts s into a PathwayType.
func ParsePathwayType(s string) (PathwayType, error) {
	for _, t := range PathwayTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown pathway type %q", s)
}

// CostRange is the total cost band of a pathway, in the provider's currency.
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Placement summarizes outcomes reported for a pathway.
type Placement struct {
	Rate          float64  `json:"rate"`
	AverageSalary float64  `json:"average_salary"`
	TopRecruiters []string `json:"top_recruiters,omitempty"`
}

// Pathway is a named route to a career outcome. Values are replaced
// wholesale on refetch and never mutated in place.
type Pathway struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       PathwayType `json:"type"`
	Difficulty string      `json:"difficulty"`
	Duration   string      `json:"duration"`
	Cost       CostRange   `json:"cost"`
	Placement  Placement   `json:"placement"`
	ExamIDs    []string    `json:"exam_ids,omitempty"`
}

// Course belongs to exactly one pathway.
type Course struct {
	ID        string   `json:"id"`
	PathwayID string   `json:"pathway_id"`
	Name      string   `json:"name"`
	Duration  string   `json:"duration"`
	Topics    []string `json:"topics,omitempty"`
	Skills    []string `json:"skills,omitempty"`
}

// Institution is a school, college or training provider.
type Institution struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Ranking    int      `json:"ranking"`
	Facilities []string `json:"facilities,omitempty"`
}

// InstitutionBinding is an institution's offering of one pathway.
type InstitutionBinding struct {
	ID            string      `json:"id"`
	PathwayID     string      `json:"pathway_id"`
	Institution   Institution `json:"institution"`
	Fees          float64     `json:"fees"`
	Seats         int         `json:"seats"`
	AcceptedExams []string    `json:"accepted_exams,omitempty"`
}

// AdmissionDates holds the key dates of an admission cycle. Dates are kept
// as the provider formats them.
type AdmissionDates struct {
	ApplicationOpen  string `json:"application_open,omitempty"`
	ApplicationClose string `json:"application_close,omitempty"`
	Exam             string `json:"exam,omitempty"`
	Counselling      string `json:"counselling,omitempty"`
}

// AdmissionProcess is scoped to an (institution, pathway) pair.
// Eligibility and PreparationResources are provider-defined payloads
// passed through unmodified.
type AdmissionProcess struct {
	ID                   string          `json:"id"`
	InstitutionID        string          `json:"institution_id"`
	PathwayID            string          `json:"pathway_id"`
	Dates                AdmissionDates  `json:"dates"`
	Eligibility          json.RawMessage `json:"eligibility,omitempty"`
	PreparationResources json.RawMessage `json:"preparation_resources,omitempty"`
	Tips                 []string        `json:"tips,omitempty"`
}

// ExamInfo describes an entrance exam referenced by pathways.
type ExamInfo struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ConductingBody string          `json:"conducting_body"`
	Frequency      string          `json:"frequency"`
	Pattern        json.RawMessage `json:"pattern,omitempty"`
	Syllabus       []string        `json:"syllabus,omitempty"`
}

// Filters is an applied filter snapshot. It is a comparable value so it
// can take part in cache keys directly.
type Filters struct {
	EducationLevel string      `json:"education_level,omitempty" yaml:"education_level"`
	Budget         float64     `json:"budget,omitempty" yaml:"budget"`
	HasBudget      bool        `json:"has_budget,omitempty" yaml:"has_budget"`
	PathwayType    PathwayType `json:"pathway_type,omitempty" yaml:"pathway_type"`
	Location       string      `json:"location,omitempty" yaml:"location"`
	MinRanking     int         `json:"min_ranking,omitempty" yaml:"min_ranking"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Query encodes the filters as URL query parameters. Unset fields are omitted.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.EducationLevel != "" {
		q.Set("education_level", f.EducationLevel)
	}
	if f.HasBudget {
		q.Set("budget", strconv.FormatFloat(f.Budget, 'f', -1, 64))
	}
	if f.PathwayType != "" {
		q.Set("pathway_type", string(f.PathwayType))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.MinRanking > 0 {
		q.Set("min_ranking", strconv.Itoa(f.MinRanking))
	}
	return q
}

// String renders the filters compactly for logs and headers.
func (f Filters) String() string {
	if f.IsZero() {
		return "{}"
	}
	return "{" + f.Query().Encode() + "}"
}
