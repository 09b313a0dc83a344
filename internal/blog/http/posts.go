package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/inklet/inklet/internal/blog/domain"
	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/pkg/httpx"
)

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.AuthorName,
		CreatedAt: p.CreatedAt,
	}
}

// PostsHandler serves the post collection and item endpoints.
type PostsHandler struct {
	PostService *service.PostService
	Visibility  *service.Visibility
}

// HandleList returns all posts newest-first. When the caller is
// authenticated the visibility filter removes posts they are restricted
// from; anonymous readers see everything.
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.PostService.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	var reader *domain.Identity
	if identity, ok := identityFromContext(ctx); ok {
		reader = &identity
	}

	visible, err := h.Visibility.Filter(ctx, reader, posts)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]postResponse, 0, len(visible))
	for _, p := range visible {
		out = append(out, toPostResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := postIDFromPath(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	post, err := h.PostService.Create(ctx, identity, req.Title, req.Content)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	_, err := h.PostService.Update(ctx, identity, id, domain.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "post updated"})
}

func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.PostService.Delete(ctx, identity, id); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postIDFromPath parses the {id} path segment, writing a 404 for values
// that can't possibly name a post.
func postIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "post not found")
		return 0, false
	}
	return id, true
}
