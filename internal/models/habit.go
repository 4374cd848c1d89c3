package models

import (
	"fmt"
	"time"
)

// Frequency is a habit's cadence. Each frequency maps to a fixed period
// length in days; periods are fixed windows, not calendar weeks/months,
// so streak and rate results are deterministic regardless of locale.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency validates and normalizes a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", s)
	}
}

// PeriodDays returns the fixed period length for the frequency in days,
// or 0 if the frequency is not one of the enumerated values.
func (f Frequency) PeriodDays() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	default:
		return 0
	}
}

// Habit represents a recurring practice tracked for completion.
// Frequency is immutable once completions exist against the habit.
type Habit struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Frequency   Frequency  `json:"frequency"`
	CreatedAt   time.Time  `json:"created_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
