package catalog

import "context"

type contextKey string

const scopeKey contextKey = "catalog_scope"

// WithScope attaches a scope label (usually a resource key) to the context
// for fetch event logging.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// ScopeFrom extracts the scope label from the context.
func ScopeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(scopeKey).(string); ok {
		return v
	}
	return "unknown"
}
