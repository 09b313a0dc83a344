package service

import (
	"context"
	"errors"
	"strings"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/cryptox"
	"github.com/inklet/inklet/pkg/slogx"
)

var (
	ErrMissingCredentials = errors.New("service: username and password are required")
	ErrUsernameTaken      = errors.New("service: username already taken")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords. Collapsing the two prevents username enumeration; callers
	// must never split them apart again.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
)

// UserService handles registration and credential checks. Raw passwords are
// hashed immediately and never stored or logged.
type UserService struct {
	Store store.Store
}

// Register creates a new account with the user role.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}

	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return domain.User{}, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		// The UNIQUE constraint backstops the pre-check above when two
		// registrations race on the same username.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}
