package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarlsen/tally/internal/models"
)

// Store is the on-disk JSON blob. Everything the application persists lives
// in this single document.
type Store struct {
	Version     int                    `json:"version"`
	Users       map[string]models.User `json:"users"`
	CurrentUser string                 `json:"current_user"`
	Theme       string                 `json:"theme"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Users:   make(map[string]models.User),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Users == nil {
		s.store.Users = make(map[string]models.User)
	}
	for username, user := range s.store.Users {
		s.store.Users[username] = normalizeUser(user)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetUser(username string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	user, ok := s.store.Users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user not found: %s", username)
	}

	return user, nil
}

func (s *JSONStore) SaveUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Users[user.Username] = user
	return s.save()
}

func (s *JSONStore) DeleteUser(username string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Users[username]; !ok {
		return fmt.Errorf("user not found: %s", username)
	}

	delete(s.store.Users, username)
	if s.store.CurrentUser == username {
		s.store.CurrentUser = ""
	}
	return s.save()
}

func (s *JSONStore) GetAllUsers() ([]models.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	users := make([]models.User, 0, len(s.store.Users))
	for _, user := range s.store.Users {
		users = append(users, user)
	}

	return users, nil
}

func (s *JSONStore) GetCurrentUser() (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.CurrentUser, nil
}

func (s *JSONStore) SetCurrentUser(username string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if username != "" {
		if _, ok := s.store.Users[username]; !ok {
			return fmt.Errorf("user not found: %s", username)
		}
	}

	s.store.CurrentUser = username
	return s.save()
}

func (s *JSONStore) GetTheme() (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.Theme, nil
}

func (s *JSONStore) SetTheme(theme string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Theme = theme
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note: the store is not safe for concurrent use by multiple
// goroutines without external synchronization, and running multiple tally
// processes against the same path is not supported.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
