package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

func (s *Store) AddCompletion(completion models.Completion) error {
	var rating sql.NullInt64
	if completion.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*completion.Rating), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, day, note, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		completion.ID, completion.HabitID, completion.Day, completion.Note,
		rating, completion.CreatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return errs.Validationf("habit already completed on %s", completion.Day)
	}
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, day, note, rating, created_at
		FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)

	c, err := scanCompletionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, errs.NotFoundf("completion")
	}
	return c, err
}

func (s *Store) GetCompletions(habitID, startDay, endDay string) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, day, note, rating, created_at
		FROM completions
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletionRow(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *Store) DeleteCompletion(habitID, day string) error {
	result, err := s.db.Exec(`
		DELETE FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)
	if err != nil {
		return err
	}
	return requireAffected(result, "no completion recorded for that day")
}

func (s *Store) CountCompletions(ownerID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*)
		FROM completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.owner_id = ? AND h.deleted_at IS NULL`, ownerID).Scan(&count)
	return count, err
}

func (s *Store) GetCompletionDates(habitID, startDay, endDay string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT day FROM completions
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

func (s *Store) GetHabitCompletionDates(ownerID string) (map[string][]string, error) {
	rows, err := s.db.Query(`
		SELECT c.habit_id, c.day
		FROM completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.owner_id = ? AND h.deleted_at IS NULL
		ORDER BY c.habit_id, c.day`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string][]string)
	for rows.Next() {
		var habitID, day string
		if err := rows.Scan(&habitID, &day); err != nil {
			return nil, err
		}
		dates[habitID] = append(dates[habitID], day)
	}

	return dates, rows.Err()
}

func scanCompletionRow(row rowScanner) (models.Completion, error) {
	var c models.Completion
	var rating sql.NullInt64
	var createdAt string

	err := row.Scan(&c.ID, &c.HabitID, &c.Day, &c.Note, &rating, &createdAt)
	if err != nil {
		return models.Completion{}, err
	}

	if rating.Valid {
		r := int(rating.Int64)
		c.Rating = &r
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return c, nil
}
