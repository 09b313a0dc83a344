package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inklet/inklet/internal/blog/store"
)

// txStore adapts *sql.Tx to the store.Tx interface. Starting a transaction
// inside a transaction is a programming error and fails loudly instead of
// silently nesting.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore { return &txStore{tx: tx} }

var errNestedTx = errors.New("sqlite: transaction already in progress")

func (t *txStore) Users() store.Users               { return &usersRepo{db: t.tx} }
func (t *txStore) Posts() store.Posts               { return &postsRepo{db: t.tx} }
func (t *txStore) Restrictions() store.Restrictions { return &restrictionsRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) ApplyMigrations() error { return errors.New("sqlite: migrations require a plain store") }

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }
