package blog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bloghttp "github.com/inklet/inklet/internal/blog/http"
	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/internal/blog/store/drivers/sqlite"
	"github.com/inklet/inklet/pkg/jwtx"
	"github.com/inklet/inklet/pkg/slogx"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for blog service end-to-end tests. Each test gets its own
 * in-process server backed by an in-memory database, seeded with the admin
 * account, and talks to it over real HTTP.
 */

const (
	adminUsername = "admin"
	adminPassword = "Admin123!"

	tokenSecret = "e2e-test-secret-0123456789"
	tokenIssuer = "blog-e2e"
)

type testServer struct {
	*httptest.Server
	store  store.Store
	signer *jwtx.HS256
}

// setupServer starts a fully wired blog service for one test.
func setupServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.New(slogx.Config{
		Service: "blog-service",
		Version: "test",
		Env:     "test",
		Level:   "error",
	})

	signer := jwtx.NewHS256([]byte(tokenSecret), tokenIssuer)

	bootstrap := &service.BootstrapService{Store: st}
	_, _, err = bootstrap.EnsureAdmin(context.Background(), adminUsername, adminPassword)
	require.NoError(t, err)

	router := bloghttp.NewRouter(signer, "test", st, logger)
	router.UserService = &service.UserService{Store: st}
	router.TokenService = &service.TokenService{Signer: signer, Issuer: tokenIssuer, TTL: time.Hour}
	router.PostService = &service.PostService{Store: st}
	router.Visibility = &service.Visibility{Store: st}
	router.RestrictionService = &service.RestrictionService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: st, signer: signer}
}

// do sends a JSON request with optional bearer token and decodes the JSON
// response into out (which may be nil for empty responses).
func (s *testServer) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register creates an account and asserts success.
func (s *testServer) register(t *testing.T, username, password string) {
	t.Helper()

	status := s.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, status)
}

// login exchanges credentials for a token and asserts success.
func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	var out struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	status := s.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	require.Equal(t, username, out.Username)
	return out.Token
}

// registerAndLogin is the common "new user with a session" setup.
func (s *testServer) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	s.register(t, username, password)
	return s.login(t, username, password)
}

type postJSON struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// createPost publishes a post and asserts success.
func (s *testServer) createPost(t *testing.T, token, title, content string) postJSON {
	t.Helper()

	var out postJSON
	status := s.do(t, http.MethodPost, "/posts", token, map[string]string{
		"title":   title,
		"content": content,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, out.ID)
	return out
}

// listPosts fetches the feed, optionally authenticated.
func (s *testServer) listPosts(t *testing.T, token string) []postJSON {
	t.Helper()

	var out []postJSON
	status := s.do(t, http.MethodGet, "/posts", token, nil, &out)
	require.Equal(t, http.StatusOK, status)
	return out
}

// errorJSON is the service's error envelope.
type errorJSON struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func postIDs(posts []postJSON) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
