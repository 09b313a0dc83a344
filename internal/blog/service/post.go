package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/slogx"
)

// ErrValidation marks a request whose fields are missing or empty.
var ErrValidation = errors.New("service: validation failed")

// PostService owns post CRUD. It performs validation and, for mutations on
// existing posts, the existence-then-authorization sequence inside one
// transaction so a concurrent delete cannot slip between the check and the
// write. Policy decisions are delegated to Authorize; the repositories
// below never re-check them.
type PostService struct {
	Store store.Store
}

// Create inserts a new post authored by the caller.
func (s *PostService) Create(ctx context.Context, identity domain.Identity, title, content string) (domain.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return domain.Post{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return domain.Post{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post, err := s.Store.Posts().CreatePost(ctx, domain.Post{
		Title:      title,
		Content:    content,
		AuthorID:   identity.UserID,
		AuthorName: identity.Username,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return domain.Post{}, err
	}

	slogx.FromContext(ctx).Info("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// Get returns a single post or store.ErrNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (domain.Post, error) {
	return s.Store.Posts().GetPostByID(ctx, id)
}

// List returns every post, newest first. Visibility filtering is the
// caller's concern; see Visibility.Filter.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListPosts(ctx)
}

// Update changes the supplied fields of a post. Author and creation time
// never change. The caller must be the author or an admin.
func (s *PostService) Update(ctx context.Context, identity domain.Identity, id int64, upd domain.PostUpdate) (domain.Post, error) {
	if upd.Empty() {
		return domain.Post{}, fmt.Errorf("%w: at least one of title or content is required", ErrValidation)
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return domain.Post{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return domain.Post{}, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}

	var updated domain.Post
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Existence first: a missing post is NotFound regardless of who asks.
		post, err := tx.Posts().GetPostByID(ctx, id)
		if err != nil {
			return err
		}

		if err := Authorize(identity, post.AuthorID); err != nil {
			return err
		}

		if upd.Title != nil {
			post.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Content != nil {
			post.Content = strings.TrimSpace(*upd.Content)
		}

		if err := tx.Posts().UpdatePost(ctx, post.ID, post.Title, post.Content); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}

	slogx.FromContext(ctx).Info("post updated", "post_id", id, "user_id", identity.UserID)
	return updated, nil
}

// Delete removes a post. The caller must be the author or an admin.
func (s *PostService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.Posts().GetPostByID(ctx, id)
		if err != nil {
			return err
		}

		if err := Authorize(identity, post.AuthorID); err != nil {
			return err
		}

		return tx.Posts().DeletePost(ctx, post.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("post deleted", "post_id", id, "user_id", identity.UserID)
	return nil
}
