package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/store"
)

// LoggingProvider is a decorator that records every data service call as a
// fetch event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    *zap.Logger
}

var _ Provider = (*LoggingProvider)(nil)

// WithLogging wraps a Provider with fetch event logging.
func WithLogging(p Provider, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) ListPathways(ctx context.Context, careerID string, filters Filters) ([]Pathway, error) {
	return record(ctx, l, OpListPathways, func() ([]Pathway, error) { return l.inner.ListPathways(ctx, careerID, filters) })
}

func (l *LoggingProvider) ListCourses(ctx context.Context, pathwayID string) ([]Course, error) {
	return record(ctx, l, OpListCourses, func() ([]Course, error) { return l.inner.ListCourses(ctx, pathwayID) })
}

func (l *LoggingProvider) ListInstitutions(ctx context.Context, pathwayID string, filters Filters) ([]InstitutionBinding, error) {
	return record(ctx, l, OpListInstitutions, func() ([]InstitutionBinding, error) {
		return l.inner.ListInstitutions(ctx, pathwayID, filters)
	})
}

func (l *LoggingProvider) ListAdmissionProcesses(ctx context.Context, institutionID, pathwayID string) ([]AdmissionProcess, error) {
	return record(ctx, l, OpListAdmissions, func() ([]AdmissionProcess, error) {
		return l.inner.ListAdmissionProcesses(ctx, institutionID, pathwayID)
	})
}

func (l *LoggingProvider) GetExamInfo(ctx context.Context, examIDs []string) ([]ExamInfo, error) {
	return record(ctx, l, OpGetExamInfo, func() ([]ExamInfo, error) { return l.inner.GetExamInfo(ctx, examIDs) })
}

func record[T any](ctx context.Context, l *LoggingProvider, op string, call func() ([]T, error)) ([]T, error) {
	start := time.Now()
	out, err := call()
	latency := time.Since(start)

	data := store.FetchEventData{
		Operation: op,
		Scope:     ScopeFrom(ctx),
		ItemCount: len(out),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.logger.Debug("data service call",
		zap.String("op", op),
		zap.String("scope", data.Scope),
		zap.Int("items", data.ItemCount),
		zap.Duration("latency", latency),
		zap.Error(err))

	// Log the event but don't fail the call if logging fails. The
	// request context may already be done, so the append gets its own.
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if logErr := l.eventRepo.AppendFetch(appendCtx, data); logErr != nil {
		l.logger.Warn("failed to record fetch event", zap.String("op", op), zap.Error(logErr))
	}

	return out, err
}
