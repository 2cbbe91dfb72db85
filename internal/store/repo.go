package store

import (
	"context"
	"time"
)

// SessionStateVersion is the current layout of SessionState.
const SessionStateVersion = 1

// SessionState is the explorer state restored at startup and saved on
// every change. Filters hold the raw field values as the user entered them
// so they pass through validation again when restored.
type SessionState struct {
	Version       int               `json:"version"`
	SessionID     string            `json:"session_id"`
	CareerID      string            `json:"career_id"`
	Filters       map[string]string `json:"filters,omitempty"`
	PathwayID     string            `json:"pathway_id,omitempty"`
	InstitutionID string            `json:"institution_id,omitempty"`
	Tab           string            `json:"tab,omitempty"`

	UpdatedAt time.Time `json:"-"`
}

// SessionRepo persists the explorer session.
type SessionRepo interface {
	// Load returns the saved session, or nil if none exists.
	Load(ctx context.Context) (*SessionState, error)

	// Save replaces the saved session.
	Save(ctx context.Context, state *SessionState) error

	// Clear deletes the saved session.
	Clear(ctx context.Context) error
}

// FetchEventData captures a single data service call.
type FetchEventData struct {
	Operation    string
	Scope        string
	ItemCount    int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// FetchStat aggregates fetch events for one operation.
type FetchStat struct {
	Operation    string
	Calls        int
	Failures     int
	AvgLatencyMs float64
}

// EventRepo provides append and aggregate access to fetch events.
type EventRepo interface {
	// AppendFetch records a data service call.
	AppendFetch(ctx context.Context, data FetchEventData) error

	// FetchStats returns per-operation aggregates ordered by operation.
	FetchStats(ctx context.Context) ([]FetchStat, error)

	// PruneFetches deletes all but the keep most recent events.
	PruneFetches(ctx context.Context, keep int) error
}
