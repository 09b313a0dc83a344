package blog_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type healthJSON struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func TestHealthEndpoints(t *testing.T) {
	s := setupServer(t)

	t.Run("livez", func(t *testing.T) {
		var out healthJSON
		status := s.do(t, http.MethodGet, "/livez", "", nil, &out)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", out.Status)
		require.Equal(t, "test", out.Version)
	})

	t.Run("readyz reports database state", func(t *testing.T) {
		var out healthJSON
		status := s.do(t, http.MethodGet, "/readyz", "", nil, &out)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", out.Status)
		require.Equal(t, "ok", out.Checks["database"])
	})
}
