package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Email, user.CreatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return errs.Validationf("username %q is already taken", user.Username)
	}
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, created_at
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) GetUserByName(username string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, created_at
		FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, username, email, created_at
		FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt string

		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &createdAt); err != nil {
			return nil, err
		}

		u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for user %s: %w", u.ID, err)
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string

	err := row.Scan(&u.ID, &u.Username, &u.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errs.NotFoundf("user")
		}
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return u, nil
}
