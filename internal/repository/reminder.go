package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hray3182/RemindSnap/internal/database"
	"github.com/hray3182/RemindSnap/internal/models"
)

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("reminder not found")

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (message, remind_at, notified, recurrence_rule)
		 VALUES ($1, $2, false, $3)
		 RETURNING id, created_at`,
		reminder.Message, reminder.RemindAt, reminder.RecurrenceRule,
	).Scan(&reminder.ID, &reminder.CreatedAt)
}

// ListAll returns every reminder in insertion order.
func (r *ReminderRepository) ListAll(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, message, remind_at, notified, recurrence_rule, notified_at, created_at
		 FROM reminders ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.Message, &reminder.RemindAt, &reminder.Notified,
			&reminder.RecurrenceRule, &reminder.NotifiedAt, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// Delete removes a reminder. Deleting an id that does not exist is a no-op.
func (r *ReminderRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE id = $1`,
		id,
	)
	return err
}

// GetDue returns reminders with remind_at at or before the given instant that
// have not yet been notified, ordered by remind_at.
func (r *ReminderRepository) GetDue(ctx context.Context, until time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, message, remind_at, notified, recurrence_rule, notified_at, created_at
		 FROM reminders WHERE notified = false AND remind_at <= $1
		 ORDER BY remind_at ASC`,
		until,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.Message, &reminder.RemindAt, &reminder.Notified,
			&reminder.RecurrenceRule, &reminder.NotifiedAt, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// ClaimForNotification flips the notified flag with a check-and-set so only
// one caller can win the claim for a given reminder. Returns false if the
// reminder was already claimed or does not exist.
func (r *ReminderRepository) ClaimForNotification(ctx context.Context, id int, now time.Time) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET notified = true, notified_at = $2
		 WHERE id = $1 AND notified = false`,
		id, now,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseClaim undoes a claim whose delivery failed, so the reminder is
// picked up again on a later scan.
func (r *ReminderRepository) ReleaseClaim(ctx context.Context, id int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET notified = false, notified_at = NULL WHERE id = $1`,
		id,
	)
	return err
}

// Reschedule moves a recurring reminder to its next occurrence and makes it
// eligible for notification again.
func (r *ReminderRepository) Reschedule(ctx context.Context, id int, next time.Time) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET remind_at = $2, notified = false WHERE id = $1`,
		id, next,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
