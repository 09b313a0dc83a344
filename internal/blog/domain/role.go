package domain

import (
	"errors"
	"strings"
)

// Role is a closed enum. Keeping it a dedicated type instead of a free
// string means a typo'd role can never pass an admin check.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a stored or transmitted role value.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }

// IsAdmin reports whether the role grants administrative privilege.
func (r Role) IsAdmin() bool { return r == RoleAdmin }
