package sqlite

import (
	"context"

	"github.com/inklet/inklet/internal/blog/domain"
)

type restrictionsRepo struct {
	db dbtx
}

func (r *restrictionsRepo) CreateRestriction(ctx context.Context, res domain.Restriction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_visibility (post_id, restricted_user) VALUES (?, ?)`,
		res.PostID, res.RestrictedUser)
	return err
}

func (r *restrictionsRepo) ListRestrictedPostIDs(ctx context.Context, username string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id FROM post_visibility WHERE restricted_user = ?`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *restrictionsRepo) ListRestrictedUsers(ctx context.Context, postID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT restricted_user FROM post_visibility WHERE post_id = ?`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
