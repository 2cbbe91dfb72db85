package explore

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// Filter field names accepted by FilterStore.SetFilter.
const (
	FieldEducationLevel = "education_level"
	FieldBudget         = "budget"
	FieldPathwayType    = "pathway_type"
	FieldLocation       = "location"
	FieldMinRanking     = "min_ranking"
)

// FilterFields lists the filter fields in display order.
func FilterFields() []string {
	return []string{FieldEducationLevel, FieldBudget, FieldPathwayType, FieldLocation, FieldMinRanking}
}

// EducationLevels lists the accepted education levels.
func EducationLevels() []string {
	return []string{"10th", "12th", "diploma", "graduate", "postgraduate"}
}

// ValidationError reports a filter value rejected by FilterStore.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// FilterStore holds draft filter criteria. Edits are validated immediately
// but only take effect once Apply is called.
type FilterStore struct {
	draft      catalog.Filters
	raw        map[string]string
	appliedRaw map[string]string
}

// NewFilterStore creates a store with no filters set.
func NewFilterStore() *FilterStore {
	return &FilterStore{
		raw:        make(map[string]string),
		appliedRaw: make(map[string]string),
	}
}

// SetFilter validates value and stores it as the draft value of field.
// An empty value clears the field. On error the previous value is kept.
func (s *FilterStore) SetFilter(field, value string) error {
	value = strings.TrimSpace(value)
	next := s.draft

	switch field {
	case FieldEducationLevel:
		if value != "" && !slices.Contains(EducationLevels(), value) {
			return &ValidationError{Field: field, Value: value,
				Reason: "must be one of " + strings.Join(EducationLevels(), ", ")}
		}
		next.EducationLevel = value

	case FieldBudget:
		if value == "" {
			next.Budget, next.HasBudget = 0, false
			break
		}
		b, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(b) || math.IsInf(b, 0) {
			return &ValidationError{Field: field, Value: value, Reason: "must be a number"}
		}
		if b < 0 {
			return &ValidationError{Field: field, Value: value, Reason: "must not be negative"}
		}
		next.Budget, next.HasBudget = b, true

	case FieldPathwayType:
		if value == "" {
			next.PathwayType = ""
			break
		}
		t, err := catalog.ParsePathwayType(strings.ToLower(value))
		if err != nil {
			return &ValidationError{Field: field, Value: value, Reason: err.Error()}
		}
		next.PathwayType = t

	case FieldLocation:
		next.Location = value

	case FieldMinRanking:
		if value == "" {
			next.MinRanking = 0
			break
		}
		r, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: field, Value: value, Reason: "must be a whole number"}
		}
		if r < 0 {
			return &ValidationError{Field: field, Value: value, Reason: "must not be negative"}
		}
		next.MinRanking = r

	default:
		return &ValidationError{Field: field, Value: value, Reason: "unknown filter"}
	}

	s.draft = next
	if value == "" {
		delete(s.raw, field)
	} else {
		s.raw[field] = value
	}
	return nil
}

// Draft returns the current, not yet applied, filter values.
func (s *FilterStore) Draft() catalog.Filters {
	return s.draft
}

// Value returns the raw draft input for field.
func (s *FilterStore) Value(field string) string {
	return s.raw[field]
}

// Apply snapshots the draft as the applied filters.
func (s *FilterStore) Apply() catalog.Filters {
	s.appliedRaw = maps.Clone(s.raw)
	return s.draft
}

// AppliedFields returns the raw values behind the last applied snapshot.
func (s *FilterStore) AppliedFields() map[string]string {
	return maps.Clone(s.appliedRaw)
}

// Load replaces the draft with fields, validating each one. Invalid fields
// are skipped and reported together.
func (s *FilterStore) Load(fields map[string]string) error {
	s.draft = catalog.Filters{}
	s.raw = make(map[string]string)

	var errs []error
	for _, f := range slices.Sorted(maps.Keys(fields)) {
		if err := s.SetFilter(f, fields[f]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
