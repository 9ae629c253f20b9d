package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Fixed keys the persisted identity is stored under.
const (
	KeyName   = "name"
	KeyEmail  = "email"
	KeyUserID = "user_id"
)

// SessionRepository persists the signed-in identity as key/value rows in the
// session table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get returns the value stored under key, or "" when the key is absent.
func (r *SessionRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session value: %w", err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *SessionRepository) Set(key, value string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store session value: %w", err)
	}
	return nil
}

// SetAll stores every key/value pair in a single transaction so a partial
// identity is never persisted.
func (r *SessionRepository) SetAll(values map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for key, value := range values {
		query := `
			INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.Exec(query, key, value, now); err != nil {
			return fmt.Errorf("failed to store session value %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session values: %w", err)
	}
	return nil
}

// Clear removes every persisted session value.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
