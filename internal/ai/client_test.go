package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare_json",
			input: `{"reminderMsg": "x"}`,
			want:  `{"reminderMsg": "x"}`,
		},
		{
			name:  "fence_with_language_tag",
			input: "```json\n{\"reminderMsg\": \"x\"}\n```",
			want:  `{"reminderMsg": "x"}`,
		},
		{
			name:  "fence_without_language_tag",
			input: "```\n{\"reminderMsg\": \"x\"}\n```",
			want:  `{"reminderMsg": "x"}`,
		},
		{
			name:  "single_line_fence",
			input: "```{\"reminderMsg\": \"x\"}```",
			want:  `{"reminderMsg": "x"}`,
		},
		{
			name:  "surrounding_whitespace",
			input: "  \n```json\n{\"a\": 1}\n```\n  ",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestParseDraft(t *testing.T) {
	t.Run("valid_response", func(t *testing.T) {
		draft, err := parseDraft(`{"reminderMsg": "Dentist appointment", "remindAt": "2026-07-01T18:30:00Z"}`)
		require.NoError(t, err)
		assert.Equal(t, "Dentist appointment", draft.Message)
		assert.Equal(t, time.Date(2026, 7, 1, 18, 30, 0, 0, time.UTC), draft.RemindAt.UTC())
		assert.False(t, draft.Notified)
	})

	t.Run("fenced_response", func(t *testing.T) {
		draft, err := parseDraft("```json\n{\"reminderMsg\": \"Pay rent\", \"remindAt\": \"2026-07-01T09:00:00Z\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "Pay rent", draft.Message)
	})

	t.Run("timestamp_without_zone", func(t *testing.T) {
		draft, err := parseDraft(`{"reminderMsg": "Call mom", "remindAt": "2026-07-01T09:00"}`)
		require.NoError(t, err)
		assert.Equal(t, 9, draft.RemindAt.Hour())
	})

	t.Run("malformed_json_is_extraction_error", func(t *testing.T) {
		_, err := parseDraft("I could not find a reminder in this image.")
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("missing_date_is_extraction_error", func(t *testing.T) {
		_, err := parseDraft(`{"reminderMsg": "Pay rent", "remindAt": ""}`)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("unparseable_date_is_extraction_error", func(t *testing.T) {
		_, err := parseDraft(`{"reminderMsg": "Pay rent", "remindAt": "sometime soon"}`)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("missing_message_is_extraction_error", func(t *testing.T) {
		_, err := parseDraft(`{"reminderMsg": "  ", "remindAt": "2026-07-01T09:00:00Z"}`)
		assert.ErrorIs(t, err, ErrExtraction)
	})
}
