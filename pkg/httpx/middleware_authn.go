package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/inklet/inklet/pkg/jwtx"
	"github.com/inklet/inklet/pkg/slogx"
)

// AuthnMiddleware enforces a bearer token on the wrapped handler. The three
// failure modes carry different outward signals on purpose:
//
//   - no Authorization header at all       -> 401 missing_token
//   - token past its expiry                -> 401 token_expired
//   - bad signature, structure, or payload -> 403 invalid_token
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, http.StatusUnauthorized, "missing_token", "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, http.StatusUnauthorized, "token_expired", "token expired")
					return
				}
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, http.StatusForbidden, "invalid_token", "token verification failed")
				return
			}

			ctx, err = contextWithAuth(ctx, claims)
			if err != nil {
				log.Warn("jwt claims unusable", "err", err)
				writeBearerError(w, http.StatusForbidden, "invalid_token", "token verification failed")
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthnMiddleware attaches an identity when a usable bearer token is
// present and otherwise lets the request through anonymously. An unusable
// token degrades to anonymous rather than failing: the only endpoint using
// this treats lack of identity as "show everything".
func OptionalAuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("ignoring unusable bearer token", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx, err = contextWithAuth(ctx, claims)
			if err != nil {
				slogx.FromContext(ctx).Warn("ignoring unusable bearer token", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")), true
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) (context.Context, error) {
	// The subject must be a decimal user id; a signed token without one is
	// still unusable.
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return ctx, jwtx.ErrInvalidClaim
	}

	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	return ctx, nil
}

// RFC 6750-style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, code int, errCode, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, code, map[string]string{"error": errCode, "error_description": desc})
}
