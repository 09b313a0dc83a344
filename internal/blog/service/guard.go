package service

import (
	"errors"

	"github.com/inklet/inklet/internal/blog/domain"
)

// ErrForbidden means the caller is authenticated but lacks privilege over
// the target resource.
var ErrForbidden = errors.New("service: forbidden")

// Authorize decides whether identity may mutate a post owned by authorID:
// admins always, everyone else only their own posts. Ownership is compared
// by user id, the canonical key. Callers must resolve the resource's
// existence before invoking this so that a missing post reports NotFound,
// never Forbidden.
func Authorize(identity domain.Identity, authorID int64) error {
	if identity.Role.IsAdmin() {
		return nil
	}
	if identity.UserID == authorID {
		return nil
	}
	return ErrForbidden
}
