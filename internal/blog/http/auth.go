package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/pkg/httpx"
	"github.com/inklet/inklet/pkg/slogx"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler creates new accounts.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	_, err := h.UserService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "missing_fields", "username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "username_conflict", "username already taken")
		default:
			writeServiceError(ctx, w, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "registration successful",
	})
}

// LoginHandler exchanges credentials for a token.
type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	user, err := h.UserService.Login(ctx, req.Username, req.Password)
	if err != nil {
		// Unknown username and wrong password produce the same response so
		// the endpoint can't be used to enumerate accounts.
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
			return
		}
		writeServiceError(ctx, w, err)
		return
	}

	token, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Username,
	})
}
