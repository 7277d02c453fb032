package models

import "time"

// Reminder is the sole persisted entity. JSON field names follow the wire
// contract the frontend already speaks (reminderMsg / remindAt / isReminded).
type Reminder struct {
	ID             int        `json:"id"`
	Message        string     `json:"reminderMsg"`
	RemindAt       time.Time  `json:"remindAt"`
	Notified       bool       `json:"isReminded"`
	RecurrenceRule string     `json:"recurrenceRule,omitempty"` // RFC 5545 RRULE
	NotifiedAt     *time.Time `json:"notifiedAt,omitempty"`     // Last delivery time
	CreatedAt      time.Time  `json:"createdAt"`
}

// IsRecurring returns true if this reminder has a recurrence rule
func (r *Reminder) IsRecurring() bool {
	return r.RecurrenceRule != ""
}

// Due reports whether the reminder should be delivered at the given instant.
// The boundary is inclusive: a reminder due exactly now is due.
func (r *Reminder) Due(now time.Time) bool {
	return !r.Notified && !r.RemindAt.After(now)
}
