package models

import "time"

// User owns habits. Authentication is out of scope; the CLI selects an
// acting user by username.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
