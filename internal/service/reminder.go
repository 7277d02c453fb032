package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/hray3182/RemindSnap/internal/models"
	"github.com/hray3182/RemindSnap/internal/rrule"
)

// ErrInvalidInput marks request-level validation failures (empty message,
// unparseable timestamp, malformed recurrence rule).
var ErrInvalidInput = errors.New("invalid input")

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	ListAll(ctx context.Context) ([]*models.Reminder, error)
	Delete(ctx context.Context, id int) error
}

type ReminderService struct {
	store Store
	wake  func() // optional: pokes the notifier after a create
}

func New(store Store, wake func()) *ReminderService {
	return &ReminderService{store: store, wake: wake}
}

// Add validates and persists a new reminder, then returns the full current
// list. Mutations return the whole list because the frontend treats every
// mutation response as a list refresh.
func (s *ReminderService) Add(ctx context.Context, message, remindAt, recurrenceRule string) ([]*models.Reminder, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	when, err := ParseRemindAt(remindAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if recurrenceRule != "" {
		if err := rrule.Validate(recurrenceRule); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	reminder := &models.Reminder{
		Message:        message,
		RemindAt:       when,
		RecurrenceRule: recurrenceRule,
	}
	if err := s.store.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	if s.wake != nil {
		s.wake()
	}

	return s.List(ctx)
}

// Delete removes a reminder and returns the full current list. Unknown ids
// are a no-op, so a repeated delete returns the unchanged list.
func (s *ReminderService) Delete(ctx context.Context, id int) ([]*models.Reminder, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete reminder: %w", err)
	}
	return s.List(ctx)
}

// List returns all reminders in insertion order. Never returns a nil slice;
// the frontend maps over the response unconditionally.
func (s *ReminderService) List(ctx context.Context) ([]*models.Reminder, error) {
	reminders, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	if reminders == nil {
		reminders = []*models.Reminder{}
	}
	return reminders, nil
}

// ParseRemindAt parses a reminder timestamp. RFC 3339 and the browser's
// datetime-local format are tried first; anything else goes through the
// natural language parser ("tomorrow 9am").
func ParseRemindAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("remindAt is required")
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable remindAt %q", value)
	}
	return result.Time, nil
}
