package catalog

import "context"

// Provider is the remote data service the explorer reads from.
// Implementations must be safe for concurrent use: dependent resources for
// a pathway are fetched in parallel.
type Provider interface {
	// ListPathways returns the pathways leading to careerID that match filters.
	ListPathways(ctx context.Context, careerID string, filters Filters) ([]Pathway, error)

	// ListCourses returns the courses of a pathway.
	ListCourses(ctx context.Context, pathwayID string) ([]Course, error)

	// ListInstitutions returns the institutions offering a pathway that
	// match filters.
	ListInstitutions(ctx context.Context, pathwayID string, filters Filters) ([]InstitutionBinding, error)

	// ListAdmissionProcesses returns the admission processes for an
	// institution's offering of a pathway.
	ListAdmissionProcesses(ctx context.Context, institutionID, pathwayID string) ([]AdmissionProcess, error)

	// GetExamInfo returns exam details for examIDs. Unknown IDs are omitted.
	GetExamInfo(ctx context.Context, examIDs []string) ([]ExamInfo, error)
}

// Operation names, used for logging and fetch events.
const (
	OpListPathways     = "list_pathways"
	OpListCourses      = "list_courses"
	OpListInstitutions = "list_institutions"
	OpListAdmissions   = "list_admission_processes"
	OpGetExamInfo      = "get_exam_info"
)
