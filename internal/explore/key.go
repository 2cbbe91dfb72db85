package explore

import (
	"fmt"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// Kind identifies which resource family a key fetches.
type Kind int

const (
	KindPathways Kind = iota + 1
	KindCourses
	KindInstitutions
	KindExams
	KindAdmissions
)

func (k Kind) String() string {
	switch k {
	case KindPathways:
		return "pathways"
	case KindCourses:
		return "courses"
	case KindInstitutions:
		return "institutions"
	case KindExams:
		return "exams"
	case KindAdmissions:
		return "admissions"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ResourceKey identifies what is fetched and under which scope. Keys are
// plain comparable values: two keys with the same fields are the same key.
// Only the fields meaningful for the kind are set; use the constructors.
type ResourceKey struct {
	Kind          Kind
	CareerID      string
	PathwayID     string
	InstitutionID string
	Filters       catalog.Filters
}

// PathwaysKey scopes the pathway list to a career and filter snapshot.
func PathwaysKey(careerID string, filters catalog.Filters) ResourceKey {
	return ResourceKey{Kind: KindPathways, CareerID: careerID, Filters: filters}
}

// CoursesKey scopes courses to a pathway.
func CoursesKey(pathwayID string) ResourceKey {
	return ResourceKey{Kind: KindCourses, PathwayID: pathwayID}
}

// InstitutionsKey scopes institutions to a pathway and filter snapshot.
func InstitutionsKey(pathwayID string, filters catalog.Filters) ResourceKey {
	return ResourceKey{Kind: KindInstitutions, PathwayID: pathwayID, Filters: filters}
}

// ExamsKey scopes exam details to the exams a pathway lists.
func ExamsKey(pathwayID string) ResourceKey {
	return ResourceKey{Kind: KindExams, PathwayID: pathwayID}
}

// AdmissionsKey scopes admission processes to an (institution, pathway) pair.
func AdmissionsKey(institutionID, pathwayID string) ResourceKey {
	return ResourceKey{Kind: KindAdmissions, InstitutionID: institutionID, PathwayID: pathwayID}
}

// PerPathway reports whether the key belongs to a single pathway.
func (k ResourceKey) PerPathway() bool {
	return k.PathwayID != ""
}

func (k ResourceKey) String() string {
	switch k.Kind {
	case KindPathways:
		return fmt.Sprintf("pathways/%s%s", k.CareerID, k.Filters)
	case KindInstitutions:
		return fmt.Sprintf("institutions/%s%s", k.PathwayID, k.Filters)
	case KindAdmissions:
		return fmt.Sprintf("admissions/%s/%s", k.InstitutionID, k.PathwayID)
	default:
		return fmt.Sprintf("%s/%s", k.Kind, k.PathwayID)
	}
}

// keySet is an unordered set of resource keys.
type keySet map[ResourceKey]struct{}

func (s keySet) has(k ResourceKey) bool {
	_, ok := s[k]
	return ok
}

func (s keySet) add(k ResourceKey) {
	s[k] = struct{}{}
}
