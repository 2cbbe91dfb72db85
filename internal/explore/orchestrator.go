package explore

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// Messages surfaced for failed fetches when the provider gave none.
const (
	GenericFetchError = "something went wrong while loading"
	TimeoutFetchError = "request timed out"
)

// FetchedMsg carries the outcome of a fetch back to the event loop.
type FetchedMsg struct {
	Key        ResourceKey
	Generation uint64
	Data       any
	Err        error
}

// Orchestrator issues fetches for resource keys and applies their results
// to the cache. Every request is tagged with a fresh generation for its key;
// only the response to the latest request may write.
//
// Ensure and Apply must be called from the event loop. The commands Ensure
// returns run concurrently and never touch the cache.
type Orchestrator struct {
	cache    *Cache
	provider catalog.Provider
	logger   *zap.Logger
	timeout  time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger sets the logger used for discard and failure reports.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFetchTimeout bounds each fetch. Zero means no bound.
func WithFetchTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// NewOrchestrator creates an Orchestrator writing to cache.
func NewOrchestrator(cache *Cache, provider catalog.Provider, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		cache:    cache,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Cache returns the cache the orchestrator writes to.
func (o *Orchestrator) Cache() *Cache {
	return o.cache
}

// Ensure makes sure key is loaded or loading. It returns nil when the key
// is already Loaded or Loading; otherwise it marks the key Loading under a
// new generation and returns the command that performs the fetch.
func (o *Orchestrator) Ensure(key ResourceKey) tea.Cmd {
	switch o.cache.Get(key).Status {
	case StatusLoaded, StatusLoading:
		return nil
	}

	gen := o.cache.NextGeneration()
	o.cache.Put(key, LoadingEntry(gen))

	fetch := o.fetcher(key)
	timeout := o.timeout
	return func() tea.Msg {
		ctx := catalog.WithScope(context.Background(), key.String())
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		data, err := fetch(ctx)
		return FetchedMsg{Key: key, Generation: gen, Data: data, Err: err}
	}
}

// Apply writes a fetch result to the cache if its generation is still the
// key's current one. It reports whether the result was applied.
func (o *Orchestrator) Apply(msg FetchedMsg) bool {
	current := o.cache.Get(msg.Key)
	if msg.Generation != current.Generation || current.Status != StatusLoading {
		o.logger.Debug("discarding superseded fetch result",
			zap.Stringer("key", msg.Key),
			zap.Uint64("generation", msg.Generation),
			zap.Uint64("current", current.Generation))
		return false
	}

	if msg.Err != nil {
		text := ErrorMessage(msg.Err)
		o.logger.Warn("fetch failed",
			zap.Stringer("key", msg.Key),
			zap.Uint64("generation", msg.Generation),
			zap.Error(msg.Err))
		o.cache.Put(msg.Key, ErrorEntry(msg.Generation, text))
		return true
	}

	o.cache.Put(msg.Key, LoadedEntry(msg.Generation, msg.Data))
	return true
}

// InvalidateAndRefetch evicts every key matching pred, bumping generations
// so in-flight responses for them are dropped, then re-ensures those of the
// evicted keys that are still required.
func (o *Orchestrator) InvalidateAndRefetch(pred func(ResourceKey) bool, required func(ResourceKey) bool) tea.Cmd {
	evicted := o.cache.Invalidate(pred)
	var cmds []tea.Cmd
	for _, k := range evicted {
		o.logger.Debug("invalidated", zap.Stringer("key", k))
		if required != nil && required(k) {
			cmds = append(cmds, o.Ensure(k))
		}
	}
	return tea.Batch(cmds...)
}

// ExamsResolvable reports whether the exam IDs for an Exams key are known,
// that is whether its pathway is present in a loaded pathway list.
func (o *Orchestrator) ExamsResolvable(key ResourceKey) bool {
	_, ok := o.cache.Pathway(key.PathwayID)
	return ok
}

// fetcher binds the provider call for key. Values needed from the cache
// are read here, on the event loop, never inside the command.
func (o *Orchestrator) fetcher(key ResourceKey) func(context.Context) (any, error) {
	p := o.provider
	switch key.Kind {
	case KindPathways:
		return func(ctx context.Context) (any, error) {
			return nonNil(p.ListPathways(ctx, key.CareerID, key.Filters))
		}
	case KindCourses:
		return func(ctx context.Context) (any, error) {
			return nonNil(p.ListCourses(ctx, key.PathwayID))
		}
	case KindInstitutions:
		return func(ctx context.Context) (any, error) {
			return nonNil(p.ListInstitutions(ctx, key.PathwayID, key.Filters))
		}
	case KindAdmissions:
		return func(ctx context.Context) (any, error) {
			return nonNil(p.ListAdmissionProcesses(ctx, key.InstitutionID, key.PathwayID))
		}
	case KindExams:
		var ids []string
		if pw, ok := o.cache.Pathway(key.PathwayID); ok {
			ids = append(ids, pw.ExamIDs...)
		}
		return func(ctx context.Context) (any, error) {
			if len(ids) == 0 {
				return []catalog.ExamInfo{}, nil
			}
			return nonNil(p.GetExamInfo(ctx, ids))
		}
	}
	return func(context.Context) (any, error) {
		return nil, errors.New("unknown resource kind " + key.Kind.String())
	}
}

// nonNil normalizes a provider result so Loaded entries always carry a
// non-nil slice.
func nonNil[T any](items []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ErrorMessage maps a fetch error to the text shown for the resource: the
// provider's own message when it sent one, a timeout notice for deadline
// errors, otherwise a generic description. Transport details only go to
// the log.
func ErrorMessage(err error) string {
	if msg, ok := catalog.ProviderMessage(err); ok {
		return msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutFetchError
	}
	return GenericFetchError
}
