package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/httpx"
	"github.com/inklet/inklet/pkg/slogx"
)

// writeError emits the service's JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognised is a storage or internal failure: it is logged for
// operators and reported to the client as an opaque 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "you do not have permission to modify this post")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "post not found")
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
