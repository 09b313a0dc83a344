package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated user's id as int64.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyUsername holds the authenticated user's username.
	CtxKeyUsername ctxKey = "username"
	// CtxKeyRole holds the authenticated user's role name.
	CtxKeyRole ctxKey = "role"
)

// UsernameFromContext returns the authenticated username, or "" when the
// request is anonymous.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}
