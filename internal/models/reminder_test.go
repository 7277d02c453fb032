package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDue(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("past_and_unnotified_is_due", func(t *testing.T) {
		r := &Reminder{RemindAt: now.Add(-time.Minute)}
		assert.True(t, r.Due(now))
	})

	t.Run("exactly_now_is_due", func(t *testing.T) {
		r := &Reminder{RemindAt: now}
		assert.True(t, r.Due(now))
	})

	t.Run("future_is_not_due", func(t *testing.T) {
		r := &Reminder{RemindAt: now.Add(time.Second)}
		assert.False(t, r.Due(now))
	})

	t.Run("notified_is_never_due", func(t *testing.T) {
		r := &Reminder{RemindAt: now.Add(-time.Hour), Notified: true}
		assert.False(t, r.Due(now))
	})
}

func TestIsRecurring(t *testing.T) {
	assert.False(t, (&Reminder{}).IsRecurring())
	assert.True(t, (&Reminder{RecurrenceRule: "FREQ=WEEKLY"}).IsRecurring())
}
