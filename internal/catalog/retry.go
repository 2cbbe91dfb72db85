package catalog

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries transient transport errors
// with exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

var _ Provider = (*RetryProvider)(nil)

// WithRetry wraps a Provider with retry logic. A config with MaxAttempts
// below 2 returns p unchanged.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 2 {
		return p
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ListPathways(ctx context.Context, careerID string, filters Filters) ([]Pathway, error) {
	return retry(ctx, r, func() ([]Pathway, error) { return r.inner.ListPathways(ctx, careerID, filters) })
}

func (r *RetryProvider) ListCourses(ctx context.Context, pathwayID string) ([]Course, error) {
	return retry(ctx, r, func() ([]Course, error) { return r.inner.ListCourses(ctx, pathwayID) })
}

func (r *RetryProvider) ListInstitutions(ctx context.Context, pathwayID string, filters Filters) ([]InstitutionBinding, error) {
	return retry(ctx, r, func() ([]InstitutionBinding, error) { return r.inner.ListInstitutions(ctx, pathwayID, filters) })
}

func (r *RetryProvider) ListAdmissionProcesses(ctx context.Context, institutionID, pathwayID string) ([]AdmissionProcess, error) {
	return retry(ctx, r, func() ([]AdmissionProcess, error) {
		return r.inner.ListAdmissionProcesses(ctx, institutionID, pathwayID)
	})
}

func (r *RetryProvider) GetExamInfo(ctx context.Context, examIDs []string) ([]ExamInfo, error) {
	return retry(ctx, r, func() ([]ExamInfo, error) { return r.inner.GetExamInfo(ctx, examIDs) })
}

func retry[T any](ctx context.Context, r *RetryProvider, call func() ([]T, error)) ([]T, error) {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// No sleep after the last attempt.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return nil, lastErr
}

// shouldRetry determines if an error is transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A malformed body will be malformed again.
	var inv *InvalidResponseError
	if errors.As(err, &inv) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	// Unreachable service and unknown errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryProvider) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
