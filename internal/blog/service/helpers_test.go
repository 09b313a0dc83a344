package service

import (
	"context"
	"testing"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/internal/blog/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a migrated in-memory store scoped to the test.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// createTestUser inserts a user directly, bypassing registration. The hash
// is a placeholder; use UserService.Register when the test needs to log in.
func createTestUser(t *testing.T, st store.Store, username string, role domain.Role) domain.User {
	t.Helper()

	user, err := st.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func identityOf(user domain.User) domain.Identity {
	return domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func strPtr(s string) *string { return &s }
