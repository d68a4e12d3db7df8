package models

import "time"

// User owns its habits, moods, and reflections. Moods map date-keys to a
// 1-5 score; Reflections map date-keys to free-form journal text.
type User struct {
	Username     string           `json:"username"`
	PasswordHash string           `json:"password_hash"`
	CreatedAt    time.Time        `json:"created_at"`
	Habits       map[string]Habit `json:"habits"`
	Moods        map[string]int   `json:"moods"`
	Reflections  map[string]string `json:"reflections"`
}

// NewUser returns a user with all collections initialized.
func NewUser(username, passwordHash string, createdAt time.Time) User {
	return User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		Habits:       make(map[string]Habit),
		Moods:        make(map[string]int),
		Reflections:  make(map[string]string),
	}
}
