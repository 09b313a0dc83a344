package domain

// Identity is the caller derived from a verified token. It lives for one
// request and is never persisted or cached.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}
