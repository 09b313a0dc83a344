package http

import (
	"context"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/pkg/httpx"
)

// identityFromContext rebuilds the caller's identity from what the authn
// middleware stashed in the context. ok is false for anonymous requests.
func identityFromContext(ctx context.Context) (domain.Identity, bool) {
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(int64)
	if !ok {
		return domain.Identity{}, false
	}
	username, _ := ctx.Value(httpx.CtxKeyUsername).(string)

	roleName, _ := ctx.Value(httpx.CtxKeyRole).(string)
	role, err := domain.ParseRole(roleName)
	if err != nil {
		return domain.Identity{}, false
	}

	return domain.Identity{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, true
}
