package service

import (
	"context"
	"errors"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/cryptox"
	"github.com/inklet/inklet/pkg/slogx"
)

// BootstrapService seeds the single admin account on first start.
type BootstrapService struct {
	Store store.Store
}

// EnsureAdmin creates the admin account iff the user table is empty. When
// password is empty a random one is generated and returned so the operator
// can record it; it is never persisted in the clear.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, username, password string) (created bool, generated string, err error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, "", err
	}
	if !empty {
		return false, "", nil
	}

	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return false, "", err
		}
		generated = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, "", err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		// Another instance may have seeded concurrently; that's fine.
		if errors.Is(err, store.ErrAlreadyExists) {
			return false, "", nil
		}
		return false, "", err
	}

	slogx.FromContext(ctx).Info("seeded admin account", "user_id", user.ID, "username", user.Username)
	return true, generated, nil
}
