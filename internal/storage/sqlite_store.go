package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mkarlsen/tally/internal/migration"
	"github.com/mkarlsen/tally/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	metaCurrentUser = "current_user"
	metaTheme       = "theme"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

// Migrations returns the embedded SQLite migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// The embedded directory always exists; a failure here is a build defect.
		panic(err)
	}
	return sub
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, Migrations())
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, Migrations())

	_, err := runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) GetUser(username string) (models.User, error) {
	if s.db == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	var doc string
	err := s.db.QueryRow("SELECT doc FROM users WHERE username = ?", username).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user not found: %s", username)
		}
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return decodeUser(doc)
}

func (s *SQLiteStore) SaveUser(user models.User) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO users (username, doc) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET doc = excluded.doc
	`, user.Username, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (s *SQLiteStore) DeleteUser(username string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found: %s", username)
	}

	current, err := s.GetCurrentUser()
	if err == nil && current == username {
		return s.SetCurrentUser("")
	}

	return nil
}

func (s *SQLiteStore) GetAllUsers() ([]models.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT doc FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (s *SQLiteStore) GetCurrentUser() (string, error) {
	return s.getMeta(metaCurrentUser)
}

func (s *SQLiteStore) SetCurrentUser(username string) error {
	if username != "" {
		if _, err := s.GetUser(username); err != nil {
			return err
		}
	}
	return s.setMeta(metaCurrentUser, username)
}

func (s *SQLiteStore) GetTheme() (string, error) {
	return s.getMeta(metaTheme)
}

func (s *SQLiteStore) SetTheme(theme string) error {
	return s.setMeta(metaTheme, theme)
}

func (s *SQLiteStore) getMeta(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query meta %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) setMeta(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %s: %w", key, err)
	}
	return nil
}

func decodeUser(doc string) (models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(doc), &user); err != nil {
		return models.User{}, fmt.Errorf("failed to parse user document: %w", err)
	}
	return normalizeUser(user), nil
}

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// GetConfigPath returns the path to the underlying database file.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
