package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/slogx"
)

// RestrictionService lets a post's author (or an admin) hide the post from
// a named reader. The restricted username is deliberately not validated
// against existing accounts; restricting a name that never registers is
// harmless.
type RestrictionService struct {
	Store store.Store
}

// Restrict records that restrictedUser must not see the post.
func (s *RestrictionService) Restrict(ctx context.Context, identity domain.Identity, postID int64, restrictedUser string) error {
	restrictedUser = strings.TrimSpace(restrictedUser)
	if restrictedUser == "" {
		return fmt.Errorf("%w: restrictedUser is required", ErrValidation)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if err := Authorize(identity, post.AuthorID); err != nil {
			return err
		}

		return tx.Restrictions().CreateRestriction(ctx, domain.Restriction{
			PostID:         post.ID,
			RestrictedUser: restrictedUser,
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("post restricted",
		"post_id", postID,
		"restricted_user", restrictedUser,
		"by_user_id", identity.UserID,
	)
	return nil
}

// ListRestrictedUsers returns the usernames currently restricted from a post.
func (s *RestrictionService) ListRestrictedUsers(ctx context.Context, postID int64) ([]string, error) {
	return s.Store.Restrictions().ListRestrictedUsers(ctx, postID)
}
