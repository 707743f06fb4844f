package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

// ReminderService handles reminder business logic. Reminders have no
// ownership concept: any authenticated subject may read or create them.
type ReminderService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewReminderService creates a new ReminderService.
func NewReminderService(repo *repository.Repository, recorder metrics.Recorder) *ReminderService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReminderService{
		repo:    repo,
		metrics: recorder,
	}
}

// Get retrieves a single reminder by id.
func (s *ReminderService) Get(ctx context.Context, id int64) (*model.Reminder, error) {
	reminder, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

// List retrieves all reminders, unfiltered and unpaginated.
func (s *ReminderService) List(ctx context.Context) ([]*model.Reminder, error) {
	reminders, err := s.repo.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// CreateReminderInput defines input for creating a reminder.
type CreateReminderInput struct {
	Email string
	Text  string
}

// Create persists a new reminder.
func (s *ReminderService) Create(ctx context.Context, input CreateReminderInput) (*model.Reminder, error) {
	reminder := &model.Reminder{
		Email:     input.Email,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.metrics.IncReminderCreated()

	return reminder, nil
}
