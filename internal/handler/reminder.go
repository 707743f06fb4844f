package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/handler/dto"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/service"
)

// ReminderService defines the reminder operations the handler depends on.
type ReminderService interface {
	Get(ctx context.Context, id int64) (*model.Reminder, error)
	List(ctx context.Context) ([]*model.Reminder, error)
	Create(ctx context.Context, input service.CreateReminderInput) (*model.Reminder, error)
}

// ReminderHandler handles HTTP requests for reminder operations.
// All reminder routes sit behind the auth middleware; unlike posts there
// are no public reads.
type ReminderHandler struct {
	svc    ReminderService
	logger *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(svc ReminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /api/v1/reminders/{id}.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	reminder, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToReminderResponse(reminder))
}

// List handles GET /api/v1/reminders. Returns every reminder; no filtering,
// no pagination.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToReminderListResponse(reminders))
}

// Create handles POST /api/v1/reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateReminderRequest
	if err := dto.DecodeStrict(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	reminder, err := h.svc.Create(r.Context(), service.CreateReminderInput{
		Email: req.Email,
		Text:  req.Text,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("reminder_created",
		"reminder_id", reminder.ID,
		"user_id", sub.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: reminder.ID})
}

// CreateWithID handles POST /api/v1/reminders/{id}.
// Reminders are created only via the collection endpoint.
func (h *ReminderHandler) CreateWithID(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, "ID_IN_PATH", "Reminders are created via the collection endpoint")
}

// handleServiceError maps service errors to HTTP responses.
func (h *ReminderHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrReminderNotFound):
		writeError(w, http.StatusNotFound, "REMINDER_NOT_FOUND", "Reminder not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
