package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillpress/quillpress/internal/handler/dto"
	"github.com/quillpress/quillpress/internal/middleware"
	"github.com/quillpress/quillpress/internal/service"
	"github.com/quillpress/quillpress/internal/session"
)

// PostHandler manages post lifecycle endpoints.
type PostHandler struct {
	service *service.PostService
	logger  *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		service: svc,
		logger:  logger,
	}
}

// Create handles draft creation.
// POST /api/v1/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFromContext(r.Context())

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}

	post, err := h.service.CreatePost(r.Context(), identity, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		case errors.Is(err, service.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "TITLE_REQUIRED", "title is required")
		default:
			h.serverError(w, r, "create post", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToPostResponse(post))
}

// Get returns a single post. Drafts are visible to their owner only;
// everyone else gets the not-found shape.
// GET /api/v1/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	post, err := h.service.GetPost(r.Context(), identity, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrForbidden):
			writePostNotFound(w)
		default:
			h.serverError(w, r, "get post", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostResponse(post))
}

// Publish moves a draft to the public feed.
// POST /api/v1/posts/{id}/publish
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	post, err := h.service.PublishPost(r.Context(), identity, id)
	if err != nil {
		h.mutationError(w, r, "publish post", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostResponse(post))
}

// Delete removes a post permanently.
// DELETE /api/v1/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.DeletePost(r.Context(), identity, id); err != nil {
		h.mutationError(w, r, "delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mutationError maps service errors for publish and delete. Unlike
// reads, mutations keep the three failure kinds distinct: 401 for
// anonymous callers, 403 for authenticated non-owners, 404 for ids that
// do not resolve.
func (h *PostHandler) mutationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	identity := session.IdentityFromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrPostNotFound):
		writePostNotFound(w)
	case errors.Is(err, service.ErrForbidden):
		if identity.IsAnonymous() {
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			return
		}
		writeError(w, http.StatusForbidden, "FORBIDDEN", "you do not own this post")
	default:
		h.serverError(w, r, op, err)
	}
}

// serverError logs and maps unexpected failures. Store outages surface
// as 503 so clients can retry; anything else is a plain 500.
func (h *PostHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	if errors.Is(err, service.ErrStoreUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "storage temporarily unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
