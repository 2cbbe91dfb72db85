package explore

import (
	"github.com/abhisek/pathfinder/internal/catalog"
)

// RegionState is what a region of the view can show.
type RegionState int

const (
	RegionNotRequested RegionState = iota
	RegionLoading
	RegionLoaded
	RegionError
	RegionEmpty
	// RegionNeedsInstitution means the region cannot load until the user
	// picks an institution. It is not an error.
	RegionNeedsInstitution
)

func (s RegionState) String() string {
	switch s {
	case RegionLoading:
		return "loading"
	case RegionLoaded:
		return "loaded"
	case RegionError:
		return "error"
	case RegionEmpty:
		return "empty"
	case RegionNeedsInstitution:
		return "needs_institution"
	}
	return "not_requested"
}

func (s RegionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Region is the render state of one resource list. Items is set only when
// State is RegionLoaded; Message only when RegionError.
type Region[T any] struct {
	State   RegionState
	Key     ResourceKey
	Items   []T
	Message string
}

// View is the render model handed to the rendering layer.
type View struct {
	State State

	Pathways     Region[catalog.Pathway]
	Pathway      *catalog.Pathway
	Institution  *catalog.InstitutionBinding
	Courses      Region[catalog.Course]
	Institutions Region[catalog.InstitutionBinding]
	Admissions   Region[catalog.AdmissionProcess]
	Exams        Region[catalog.ExamInfo]
}

// Project builds the view for s from the cache. It has no side effects.
func Project(s State, cache *Cache) View {
	v := View{State: s}

	pathwaysKey := PathwaysKey(s.CareerID, s.Filters)
	v.Pathways = project[catalog.Pathway](pathwaysKey, cache.Get(pathwaysKey))
	if s.PathwayID == "" {
		return v
	}

	for i := range v.Pathways.Items {
		if v.Pathways.Items[i].ID == s.PathwayID {
			p := v.Pathways.Items[i]
			v.Pathway = &p
			break
		}
	}

	p := s.PathwayID
	v.Courses = project[catalog.Course](CoursesKey(p), cache.Get(CoursesKey(p)))
	instKey := InstitutionsKey(p, s.Filters)
	v.Institutions = project[catalog.InstitutionBinding](instKey, cache.Get(instKey))

	examsKey := ExamsKey(p)
	v.Exams = project[catalog.ExamInfo](examsKey, cache.Get(examsKey))
	if s.Tab == TabExams && v.Exams.State == RegionNotRequested && v.Pathways.State == RegionLoading {
		// Waiting on the pathway list for the exam IDs.
		v.Exams.State = RegionLoading
	}

	if s.InstitutionID == "" {
		v.Admissions = Region[catalog.AdmissionProcess]{State: RegionNeedsInstitution}
		return v
	}
	for i := range v.Institutions.Items {
		if v.Institutions.Items[i].Institution.ID == s.InstitutionID {
			b := v.Institutions.Items[i]
			v.Institution = &b
			break
		}
	}
	admKey := AdmissionsKey(s.InstitutionID, p)
	v.Admissions = project[catalog.AdmissionProcess](admKey, cache.Get(admKey))
	return v
}

func project[T any](key ResourceKey, e Entry) Region[T] {
	r := Region[T]{Key: key}
	switch e.Status {
	case StatusLoading:
		r.State = RegionLoading
	case StatusError:
		r.State = RegionError
		r.Message = e.Err
	case StatusLoaded:
		items, _ := e.Data.([]T)
		if len(items) == 0 {
			r.State = RegionEmpty
			return r
		}
		r.State = RegionLoaded
		r.Items = items
	default:
		r.State = RegionNotRequested
	}
	return r
}

// Failed returns the keys of every region currently in the Error state.
func (v View) Failed() []ResourceKey {
	var keys []ResourceKey
	add := func(state RegionState, key ResourceKey) {
		if state == RegionError {
			keys = append(keys, key)
		}
	}
	add(v.Pathways.State, v.Pathways.Key)
	add(v.Courses.State, v.Courses.Key)
	add(v.Institutions.State, v.Institutions.Key)
	add(v.Admissions.State, v.Admissions.Key)
	add(v.Exams.State, v.Exams.Key)
	return keys
}
