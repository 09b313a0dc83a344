package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/inklet/inklet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "test-issuer"

func newSigner() *jwtx.HS256 {
	return jwtx.NewHS256([]byte("test-secret-0123456789"), testIssuer)
}

func validClaims(now time.Time) jwtx.Claims {
	return jwtx.NewAccessClaims("42", "alice", "user", time.Hour, testIssuer, now)
}

func TestSignAndVerify(t *testing.T) {
	h := newSigner()

	token, err := h.Sign(validClaims(time.Now().UTC()))
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, strings.Split(token, "."), 3, "compact JWT has three segments")

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, testIssuer, claims.Issuer)
	require.NotEmpty(t, claims.ID, "jti should be set")
}

func TestVerifyExpired(t *testing.T) {
	h := newSigner()

	t.Run("past leeway fails", func(t *testing.T) {
		token, err := h.Sign(validClaims(time.Now().UTC().Add(-2 * time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("within leeway passes", func(t *testing.T) {
		// Expired ten seconds ago; the 30s leeway absorbs clock skew.
		token, err := h.Sign(validClaims(time.Now().UTC().Add(-time.Hour).Add(-10 * time.Second)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.NoError(t, err)
	})
}

func TestVerifyNotYetValid(t *testing.T) {
	h := newSigner()

	token, err := h.Sign(validClaims(time.Now().UTC().Add(time.Hour)))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrNotYetValid)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := jwtx.NewHS256([]byte("a-different-secret"), testIssuer)

	token, err := other.Sign(validClaims(time.Now().UTC()))
	require.NoError(t, err)

	_, err = newSigner().Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyMalformed(t *testing.T) {
	h := newSigner()

	for _, raw := range []string{"", "   ", "garbage", "a.b", "a.b.c.d"} {
		_, err := h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "input %q", raw)
	}
}

func TestVerifyIssuer(t *testing.T) {
	h := newSigner()

	t.Run("mismatch fails", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewAccessClaims("42", "alice", "user", time.Hour, "impostor", time.Now().UTC()))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("unset expectation accepts any issuer", func(t *testing.T) {
		lax := jwtx.NewHS256([]byte("test-secret-0123456789"), "")

		token, err := h.Sign(validClaims(time.Now().UTC()))
		require.NoError(t, err)

		_, err = lax.Verify(token)
		require.NoError(t, err)
	})
}

func TestVerifyMissingSubject(t *testing.T) {
	h := newSigner()

	token, err := h.Sign(jwtx.NewAccessClaims("", "alice", "user", time.Hour, testIssuer, time.Now().UTC()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestNewJTIUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		jti := jwtx.NewJTI()
		require.NotEmpty(t, jti)
		require.False(t, seen[jti], "jti collision")
		seen[jti] = true
	}
}
