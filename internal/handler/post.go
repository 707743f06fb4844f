package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/handler/dto"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/render"
	"github.com/inkwell/inkwell/internal/service"
)

// PostService defines the post operations the handler depends on.
type PostService interface {
	Get(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, page int, username string) ([]*model.Post, error)
	Create(ctx context.Context, sub *model.Subject, input service.CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, sub *model.Subject, input service.UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, sub *model.Subject, id int64) error
}

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	svc      PostService
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc PostService, renderer *render.Renderer, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:      svc,
		renderer: renderer,
		logger:   logger,
	}
}

// Get handles GET /api/v1/posts/{id}. Reads are public.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostResponse(post, h.renderer))
}

// List handles GET /api/v1/posts. Reads are public.
// Query parameters: page (integer, default 1) and user (username filter).
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE", "Page must be a positive integer")
			return
		}
		page = parsed
	}

	posts, err := h.svc.List(r.Context(), page, query.Get("user"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPostListResponse(posts, h.renderer))
}

// Create handles POST /api/v1/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreatePostRequest
	if err := dto.DecodeStrict(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	input := service.CreatePostInput{
		Title: req.Title,
		Text:  req.Text,
		Tags:  req.Tags,
	}

	post, err := h.svc.Create(r.Context(), sub, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_created",
		"post_id", post.ID,
		"user_id", sub.UserID,
		"tag_count", len(post.Tags),
	)

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: post.ID})
}

// CreateWithID handles POST /api/v1/posts/{id}.
// Posts are created only via the collection endpoint.
func (h *PostHandler) CreateWithID(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, "ID_IN_PATH", "Posts are created via the collection endpoint")
}

// Update handles PUT /api/v1/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if sub == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.UpdatePostRequest
	if err := dto.DecodeLoose(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	input := service.UpdatePostInput{
		ID:    id,
		Title: req.Title,
		Text:  req.Text,
		Tags:  req.Tags,
	}

	post, err := h.svc.Update(r.Context(), sub, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_updated",
		"post_id", post.ID,
		"user_id", sub.UserID,
	)

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: post.ID})
}

// Delete handles DELETE /api/v1/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if sub == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Delete(r.Context(), sub, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_deleted",
		"post_id", id,
		"user_id", sub.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *PostHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the author may modify this post")
	case errors.Is(err, service.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", "Page must be a positive integer")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrTextRequired):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Title and text are required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// parseID extracts the numeric id path parameter. Unparsable ids behave
// like ids that do not exist.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return 0, false
	}
	return id, true
}
