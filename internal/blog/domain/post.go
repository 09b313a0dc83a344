package domain

import "time"

type Post struct {
	ID       int64
	Title    string
	Content  string
	AuthorID int64

	// AuthorName is denormalized from the users table on read paths so
	// responses can show who wrote the post. Authorization always compares
	// AuthorID, never the name.
	AuthorName string

	CreatedAt time.Time
}

// PostUpdate carries the mutable subset of a post. Nil fields are left
// untouched; at least one must be set.
type PostUpdate struct {
	Title   *string
	Content *string
}

// Empty reports whether the update changes nothing.
func (u PostUpdate) Empty() bool { return u.Title == nil && u.Content == nil }
