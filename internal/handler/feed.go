package handler

import (
	"log/slog"
	"net/http"

	"github.com/quillpress/quillpress/internal/handler/dto"
	"github.com/quillpress/quillpress/internal/service"
	"github.com/quillpress/quillpress/internal/session"
)

// FeedHandler serves the public feed and the caller's draft list.
type FeedHandler struct {
	service *service.PostService
	logger  *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.PostService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		service: svc,
		logger:  logger,
	}
}

// PublicFeed returns all published posts, newest first. Open to
// anonymous visitors.
// GET /api/v1/feed
func (h *FeedHandler) PublicFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.PublicFeed(r.Context())
	if err != nil {
		h.feedError(w, r, "public feed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostListResponse(posts))
}

// Drafts returns the caller's own unpublished posts. Anonymous callers
// get an empty list rather than an error; there is nothing of theirs to
// show.
// GET /api/v1/drafts
func (h *FeedHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFromContext(r.Context())

	posts, err := h.service.DraftsFor(r.Context(), identity)
	if err != nil {
		h.feedError(w, r, "drafts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostListResponse(posts))
}

func (h *FeedHandler) feedError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed", slog.String("error", err.Error()))
	writeError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "storage temporarily unavailable")
}
