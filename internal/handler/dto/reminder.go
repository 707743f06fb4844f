package dto

import "github.com/inkwell/inkwell/internal/model"

// CreateReminderRequest represents the strictly-validated body for creating
// a reminder. Exactly email and text; nothing else.
type CreateReminderRequest struct {
	Email string `json:"email" validate:"required,email"`
	Text  string `json:"text" validate:"required"`
}

// ReminderResponse represents a reminder in API responses.
// Fields pass through verbatim; no rendering.
type ReminderResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// ToReminderResponse converts a Reminder model to ReminderResponse.
func ToReminderResponse(reminder *model.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:    reminder.ID,
		Email: reminder.Email,
		Text:  reminder.Text,
	}
}

// ToReminderListResponse converts a slice of reminders.
func ToReminderListResponse(reminders []*model.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(reminders))
	for i, reminder := range reminders {
		responses[i] = *ToReminderResponse(reminder)
	}
	return responses
}
