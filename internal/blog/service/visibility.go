package service

import (
	"context"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/store"
)

// Visibility prunes posts a reader has been restricted from seeing.
type Visibility struct {
	Store store.Store
}

// Filter returns the posts visible to the given reader, preserving the
// input order. A nil identity (anonymous reader) sees everything; the
// restriction list only applies to authenticated readers. One lookup keyed
// by the reader's username feeds a set-membership test, so the cost is
// O(posts + restrictions for that reader).
func (v *Visibility) Filter(ctx context.Context, identity *domain.Identity, posts []domain.Post) ([]domain.Post, error) {
	if identity == nil || len(posts) == 0 {
		return posts, nil
	}

	restrictedIDs, err := v.Store.Restrictions().ListRestrictedPostIDs(ctx, identity.Username)
	if err != nil {
		return nil, err
	}
	if len(restrictedIDs) == 0 {
		return posts, nil
	}

	hidden := make(map[int64]struct{}, len(restrictedIDs))
	for _, id := range restrictedIDs {
		hidden[id] = struct{}{}
	}

	visible := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := hidden[p.ID]; ok {
			continue
		}
		visible = append(visible, p)
	}
	return visible, nil
}
