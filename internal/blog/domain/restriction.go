package domain

// Restriction hides a post from one named reader. The username is not
// required to belong to an existing account; a restriction naming nobody is
// harmless. Duplicates are no-ops under set semantics.
type Restriction struct {
	PostID         int64
	RestrictedUser string
}
