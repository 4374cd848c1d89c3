package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

const habitColumns = "id, owner_id, name, description, frequency, created_at, archived_at, deleted_at"

func (s *Store) AddHabit(habit models.Habit) error {
	var archivedAt, deletedAt sql.NullString
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullString{String: habit.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		habit.ID, habit.OwnerID, habit.Name, habit.Description, string(habit.Frequency),
		habit.CreatedAt.Format(time.RFC3339), archivedAt, deletedAt)
	if isUniqueViolation(err) {
		return errs.Validationf("habit %q already exists", habit.Name)
	}
	return err
}

func (s *Store) GetHabit(ownerID, id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`, id, ownerID)
	return scanHabit(row)
}

func (s *Store) GetHabitByName(ownerID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE name = $1 AND owner_id = $2 AND deleted_at IS NULL`, name, ownerID)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(ownerID string, includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE owner_id = $1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabitRow(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var archivedAt, deletedAt sql.NullString
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullString{String: habit.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	result, err := s.db.Exec(`
		UPDATE habits SET
			name = $1,
			description = $2,
			frequency = $3,
			archived_at = $4,
			deleted_at = $5
		WHERE id = $6 AND owner_id = $7`,
		habit.Name, habit.Description, string(habit.Frequency),
		archivedAt, deletedAt, habit.ID, habit.OwnerID)
	if isUniqueViolation(err) {
		return errs.Validationf("habit %q already exists", habit.Name)
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFoundf("habit")
	}

	return nil
}

func (s *Store) ArchiveHabit(ownerID, id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already archived")
}

func (s *Store) UnarchiveHabit(ownerID, id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not archived")
}

func (s *Store) DeleteHabit(ownerID, id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already deleted")
}

func (s *Store) RestoreHabit(ownerID, id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NOT NULL`,
		id, ownerID)
	if isUniqueViolation(err) {
		return errs.Validationf("a live habit with the same name already exists")
	}
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not deleted")
}

func requireAffected(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFoundf(msg)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row *sql.Row) (models.Habit, error) {
	h, err := scanHabitRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, errs.NotFoundf("habit")
	}
	return h, err
}

func scanHabitRow(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string
	var archivedAt, deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &frequency, &createdAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if archivedAt.Valid {
		t, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		h.ArchivedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}
