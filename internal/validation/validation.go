// Package validation checks user-supplied habit and completion fields
// at the write boundary, before they reach storage or the analytics
// engine.
package validation

import (
	"strings"

	"github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/utils"
)

const (
	// RatingMin and RatingMax bound the optional completion rating.
	RatingMin = 1
	RatingMax = 5

	maxNameLen     = 100
	maxUsernameLen = 50
)

// ValidateHabitName checks that a habit name is non-empty and within
// the storage column bounds.
func ValidateHabitName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.Validationf("habit name must not be empty")
	}
	if len(trimmed) > maxNameLen {
		return errors.Validationf("habit name exceeds %d characters", maxNameLen)
	}
	return nil
}

// ValidateUsername checks that a username is non-empty, within bounds,
// and free of whitespace.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.Validationf("username must not be empty")
	}
	if len(username) > maxUsernameLen {
		return errors.Validationf("username exceeds %d characters", maxUsernameLen)
	}
	if strings.ContainsAny(username, " \t\n") {
		return errors.Validationf("username must not contain whitespace")
	}
	return nil
}

// ValidateEmail performs a light structural check; real address
// verification belongs to whatever registration flow sits in front of
// the CLI.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return errors.Validationf("invalid email address %q", email)
	}
	return nil
}

// ValidateFrequency checks that the string is one of the enumerated
// frequencies.
func ValidateFrequency(s string) error {
	if _, err := models.ParseFrequency(s); err != nil {
		return errors.Validationf("%v", err)
	}
	return nil
}

// ValidateRating checks an optional completion rating. A nil rating is
// valid; a present rating must fall in [RatingMin, RatingMax].
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < RatingMin || *rating > RatingMax {
		return errors.Validationf("rating %d out of range [%d,%d]", *rating, RatingMin, RatingMax)
	}
	return nil
}

// ValidateDay checks a YYYY-MM-DD date string.
func ValidateDay(day string) error {
	if !utils.ValidDay(day) {
		return errors.Validationf("invalid date %q (expected YYYY-MM-DD)", day)
	}
	return nil
}
