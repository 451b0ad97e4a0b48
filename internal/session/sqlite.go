package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// sessionKey is the fixed row key: the app holds at most one session.
const sessionKey = "session"

// DB persists the session across process restarts in a local SQLite
// file.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create session dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	return &DB{db: db}, nil
}

func createTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS session (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		user_email TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := db.Exec(query)
	return err
}

// Load returns the persisted session. A missing row means logged out
// and returns zero values with a nil error.
func (d *DB) Load() (model.User, string, error) {
	var user model.User
	var token string

	row := d.db.QueryRow(`SELECT token, user_name, user_email FROM session WHERE id = ?`, sessionKey)
	if err := row.Scan(&token, &user.Name, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, "", nil
		}
		return model.User{}, "", fmt.Errorf("failed to load session: %w", err)
	}

	return user, token, nil
}

// Save upserts the session row.
func (d *DB) Save(user model.User, token string) error {
	_, err := d.db.Exec(`
		INSERT INTO session (id, token, user_name, user_email)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_name = excluded.user_name,
			user_email = excluded.user_email
	`, sessionKey, token, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session row.
func (d *DB) Delete() error {
	if _, err := d.db.Exec(`DELETE FROM session WHERE id = ?`, sessionKey); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}
