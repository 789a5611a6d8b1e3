package httpx

import "context"

// sessionIDKey is an unexported context key type to avoid collisions across packages.
type sessionIDKey struct{}

// SetSessionIDInContext returns a child context carrying the review session id.
// If id is empty, the original ctx is returned unchanged.
func SetSessionIDInContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the review session id and whether one is present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}
