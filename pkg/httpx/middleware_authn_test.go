package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inklet/inklet/pkg/httpx"
	"github.com/inklet/inklet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const authnTestIssuer = "authn-test"

func newAuthnSigner() *jwtx.HS256 {
	return jwtx.NewHS256([]byte("authn-test-secret"), authnTestIssuer)
}

func signToken(t *testing.T, h *jwtx.HS256, subject string, issuedAt time.Time) string {
	t.Helper()
	token, err := h.Sign(jwtx.NewAccessClaims(subject, "alice", "user", time.Hour, authnTestIssuer, issuedAt))
	require.NoError(t, err)
	return token
}

// captureHandler records the identity values the middleware placed in context.
func captureHandler(userID *int64, username *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v, ok := r.Context().Value(httpx.CtxKeyUserID).(int64); ok {
			*userID = v
		}
		*username = httpx.UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	signer := newAuthnSigner()

	t.Run("valid token passes identity through", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, signer, "42", time.Now().UTC()))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(42), userID)
		require.Equal(t, "alice", username)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "missing_token")
		require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("expired token is 401", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, signer, "42", time.Now().UTC().Add(-2*time.Hour)))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "token_expired")
	})

	t.Run("garbage token is 403", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})

	t.Run("wrong secret is 403", func(t *testing.T) {
		other := jwtx.NewHS256([]byte("some-other-secret"), authnTestIssuer)

		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, other, "42", time.Now().UTC()))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})

	t.Run("non-numeric subject is 403", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.AuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, signer, "not-a-number", time.Now().UTC()))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})
}

func TestOptionalAuthnMiddleware(t *testing.T) {
	signer := newAuthnSigner()

	t.Run("no token proceeds anonymously", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.OptionalAuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Zero(t, userID)
		require.Empty(t, username)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.OptionalAuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, signer, "42", time.Now().UTC()))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(42), userID)
		require.Equal(t, "alice", username)
	})

	t.Run("unusable token degrades to anonymous", func(t *testing.T) {
		var userID int64
		var username string
		handler := httpx.OptionalAuthnMiddleware(signer)(captureHandler(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Zero(t, userID)
		require.Empty(t, username)
	})
}

func TestChainOrdering(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
