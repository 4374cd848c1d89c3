package models

import "time"

// Completion records that a habit was performed on a specific calendar
// date. At most one completion may exist per habit per day; the storage
// layer enforces the uniqueness.
type Completion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Note      string    `json:"note,omitempty"`
	Rating    *int      `json:"rating,omitempty"` // 1-5
	CreatedAt time.Time `json:"created_at"`
}
