package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// ErrReminderNotFound indicates no reminder with the given id exists.
var ErrReminderNotFound = errors.New("reminder not found")

// CreateReminder inserts a new reminder. The generated id is written back.
func (r *Repository) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	query := `
		INSERT INTO reminders (email, text, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		reminder.Email,
		reminder.Text,
		reminder.CreatedAt,
	).Scan(&reminder.ID)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

// GetReminderByID retrieves a reminder by its id.
func (r *Repository) GetReminderByID(ctx context.Context, id int64) (*model.Reminder, error) {
	query := `
		SELECT id, email, text, created_at
		FROM reminders
		WHERE id = $1
	`

	var reminder model.Reminder
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&reminder.ID,
		&reminder.Email,
		&reminder.Text,
		&reminder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to get reminder by ID: %w", err)
	}

	return &reminder, nil
}

// ListReminders retrieves all reminders, unfiltered and unpaginated.
func (r *Repository) ListReminders(ctx context.Context) ([]*model.Reminder, error) {
	query := `
		SELECT id, email, text, created_at
		FROM reminders
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*model.Reminder
	for rows.Next() {
		var reminder model.Reminder
		if err := rows.Scan(
			&reminder.ID,
			&reminder.Email,
			&reminder.Text,
			&reminder.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, &reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}
