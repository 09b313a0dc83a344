package store

import (
	"context"
	"errors"

	"github.com/inklet/inklet/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and let tests target
// one table's behaviour at a time. Repositories are pure data access: policy
// (ownership, roles, visibility) lives in the service layer and is never
// re-checked here.
type Store interface {
	Users() Users
	Posts() Posts
	Restrictions() Restrictions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. This is how update/delete close the
	// fetch-then-write race.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login and registration conflict checks.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the generated id.
	// A duplicate username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// IsEmpty returns true if there are no users. Used by admin seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

type Posts interface {
	// GetPostByID returns a post with its author's username joined in.
	GetPostByID(ctx context.Context, id int64) (domain.Post, error)

	// ListPosts returns all posts, newest created_at first. The ordering is
	// a contract relied on by callers and tests.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	// CreatePost inserts a post and returns it with generated id and the
	// author username populated.
	CreatePost(ctx context.Context, p domain.Post) (domain.Post, error)

	// UpdatePost overwrites title and content. Author and created_at never
	// change. Returns ErrNotFound if the post vanished.
	UpdatePost(ctx context.Context, id int64, title, content string) error

	// DeletePost removes a post. Returns ErrNotFound if nothing was deleted.
	DeletePost(ctx context.Context, id int64) error
}

type Restrictions interface {
	// CreateRestriction records that restrictedUser must not see postID.
	CreateRestriction(ctx context.Context, r domain.Restriction) error

	// ListRestrictedPostIDs returns the ids of every post the named user is
	// restricted from. This is the by-reader lookup the visibility filter
	// runs on every authenticated list.
	ListRestrictedPostIDs(ctx context.Context, username string) ([]int64, error)

	// ListRestrictedUsers returns the usernames restricted from a post.
	ListRestrictedUsers(ctx context.Context, postID int64) ([]string, error)
}
