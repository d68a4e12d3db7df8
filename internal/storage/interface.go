package storage

import "github.com/mkarlsen/tally/internal/models"

// Provider abstracts the persistence store. The engine and session layers
// never touch files or SQL directly; they load and save whole user records
// through this interface.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	GetUser(username string) (models.User, error)
	SaveUser(models.User) error
	DeleteUser(username string) error
	GetAllUsers() ([]models.User, error)

	// Session pointer: the signed-in username, or "" when signed out.
	GetCurrentUser() (string, error)
	SetCurrentUser(username string) error

	// Theme preference, stored as an opaque string.
	GetTheme() (string, error)
	SetTheme(theme string) error

	// Utils
	GetConfigPath() string
}

// normalizeUser fills nil collection maps on a freshly decoded user so
// callers can write into them without guarding every access. Older documents
// may omit empty collections entirely.
func normalizeUser(user models.User) models.User {
	if user.Habits == nil {
		user.Habits = make(map[string]models.Habit)
	}
	if user.Moods == nil {
		user.Moods = make(map[string]int)
	}
	if user.Reflections == nil {
		user.Reflections = make(map[string]string)
	}
	return user
}
