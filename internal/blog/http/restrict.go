package http

import (
	"encoding/json"
	"net/http"

	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/pkg/httpx"
)

// RestrictHandler lets a post's author or an admin hide the post from a
// named user.
type RestrictHandler struct {
	RestrictionService *service.RestrictionService
}

type restrictRequest struct {
	RestrictedUser string `json:"restrictedUser"`
}

func (h *RestrictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
		return
	}

	id, ok := postIDFromPath(w, r)
	if !ok {
		return
	}

	var req restrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	if err := h.RestrictionService.Restrict(ctx, identity, id, req.RestrictedUser); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "restriction added"})
}
