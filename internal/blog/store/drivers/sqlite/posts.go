package sqlite

import (
	"context"
	"time"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
)

type postsRepo struct {
	db dbtx
}

// postColumns joins the author username in, matching what read paths return.
const postColumns = `
	SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (r *postsRepo) GetPostByID(ctx context.Context, id int64) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx, postColumns+` WHERE p.id = ?`, id)

	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	// id breaks ties between posts created within the same timestamp tick;
	// ids are monotonic so the newest-first contract still holds.
	rows, err := r.db.QueryContext(ctx, postColumns+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, author_id, created_at) VALUES (?, ?, ?, ?)`,
		p.Title, p.Content, p.AuthorID, p.CreatedAt)
	if err != nil {
		return domain.Post{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Post{}, err
	}
	p.ID = id

	if p.AuthorName == "" {
		var username string
		row := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, p.AuthorID)
		if err := row.Scan(&username); err == nil {
			p.AuthorName = username
		}
	}
	return p, nil
}

func (r *postsRepo) UpdatePost(ctx context.Context, id int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ? WHERE id = ?`, title, content, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *postsRepo) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
