package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/pkg/jwtx"
)

var (
	// ErrTokenExpired means the token was once valid but its expiry has
	// passed. Callers surface this differently from the other failures
	// ("session expired" rather than "forbidden").
	ErrTokenExpired = errors.New("service: token expired")

	// ErrTokenInvalid means the signature or token structure is bad.
	ErrTokenInvalid = errors.New("service: token invalid")

	// ErrTokenMalformed means the token verified but its payload lacks the
	// fields an identity needs (user id, role).
	ErrTokenMalformed = errors.New("service: token payload malformed")
)

// TokenService issues and verifies the signed identity assertions that
// authenticate requests. Tokens embed user id, username, and role, and are
// valid for TTL from issuance.
type TokenService struct {
	Signer *jwtx.HS256
	Issuer string
	TTL    time.Duration
}

// Issue produces a signed token for the given user.
func (s *TokenService) Issue(user domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		strconv.FormatInt(user.ID, 10),
		user.Username,
		user.Role.String(),
		ttl,
		s.Issuer,
		time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

// Verify validates a raw token and reconstructs the caller's identity. The
// identity lives for the current request only and must not be cached.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	claims, err := s.Signer.Verify(raw)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return domain.Identity{}, ErrTokenExpired
		case errors.Is(err, jwtx.ErrInvalidClaim):
			return domain.Identity{}, ErrTokenMalformed
		default:
			return domain.Identity{}, ErrTokenInvalid
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, ErrTokenMalformed
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, ErrTokenMalformed
	}

	return domain.Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
