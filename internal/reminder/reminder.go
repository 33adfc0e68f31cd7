// Package reminder owns one-shot, time-triggered notifications: parsing the
// spoken time spec, holding the pending collection, and firing each reminder
// exactly once from a single background loop.
package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a scheduled one-shot notification. FireAt is immutable after
// creation and Notified transitions false→true at most once, under the
// scheduler's lock. Reminders are never removed; they accumulate for the
// lifetime of the session.
type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	FireAt    time.Time `json:"fireAt"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"createdAt"`
}
