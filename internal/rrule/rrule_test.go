package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("FREQ=DAILY"))
	assert.NoError(t, Validate("RRULE:FREQ=WEEKLY;BYDAY=MO"))
	assert.Error(t, Validate("FREQ=BOGUS"))
	assert.Error(t, Validate("not a rule"))
}

func TestNextOccurrence(t *testing.T) {
	dtstart := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("daily_advances_one_day", func(t *testing.T) {
		next, err := NextOccurrence("FREQ=DAILY", dtstart, dtstart)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, dtstart.Add(24*time.Hour), next.UTC())
	})

	t.Run("strictly_after", func(t *testing.T) {
		next, err := NextOccurrence("FREQ=DAILY", dtstart, dtstart.Add(-time.Hour))
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, dtstart, next.UTC())
	})

	t.Run("exhausted_rule_returns_nil", func(t *testing.T) {
		next, err := NextOccurrence("FREQ=DAILY;COUNT=1", dtstart, dtstart.Add(time.Hour))
		require.NoError(t, err)
		assert.Nil(t, next)
	})
}
