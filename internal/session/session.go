// Package session implements the user/session layer: local sign-up and
// sign-in, plus every habit, mood, and reflection mutation. It owns the user
// records and serializes their mutations; the stats engine only ever sees
// copies and returns derived values that this layer writes back.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/models"
	"github.com/mkarlsen/tally/internal/stats"
	"github.com/mkarlsen/tally/internal/storage"
)

var (
	ErrNotSignedIn        = errors.New("not signed in, run 'tally login' first")
	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrMoodOutOfRange     = fmt.Errorf("mood score must be between %d and %d", constants.MoodMin, constants.MoodMax)
)

type Manager struct {
	store storage.Provider
}

func New(store storage.Provider) *Manager {
	return &Manager{store: store}
}

// SignUp creates a new user with a bcrypt password hash and signs them in.
func (m *Manager) SignUp(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return models.User{}, fmt.Errorf("password cannot be empty")
	}

	if _, err := m.store.GetUser(username); err == nil {
		return models.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, string(hash), time.Now())
	if err := m.store.SaveUser(user); err != nil {
		return models.User{}, err
	}
	if err := m.store.SetCurrentUser(username); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// SignIn verifies the password against the stored hash and marks the user as
// the current session. Unknown users and bad passwords produce the same
// error so the CLI does not leak which usernames exist.
func (m *Manager) SignIn(username, password string) (models.User, error) {
	user, err := m.store.GetUser(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := m.store.SetCurrentUser(username); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (m *Manager) SignOut() error {
	return m.store.SetCurrentUser("")
}

// Current returns the signed-in user, or ErrNotSignedIn.
func (m *Manager) Current() (models.User, error) {
	username, err := m.store.GetCurrentUser()
	if err != nil {
		return models.User{}, err
	}
	if username == "" {
		return models.User{}, ErrNotSignedIn
	}
	return m.store.GetUser(username)
}

// AddHabit creates a habit for the current user.
func (m *Manager) AddHabit(name, description string, schedule models.Schedule, difficulty models.Difficulty) (models.Habit, error) {
	user, err := m.Current()
	if err != nil {
		return models.Habit{}, err
	}

	if strings.TrimSpace(name) == "" {
		return models.Habit{}, fmt.Errorf("habit name cannot be empty")
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Schedule:    schedule,
		Difficulty:  difficulty,
		Completions: make(map[string]bool),
		CreatedAt:   time.Now(),
	}

	user.Habits[habit.ID] = habit
	if err := m.store.SaveUser(user); err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

// UpdateHabit replaces a habit's descriptive fields and schedule. The
// completion history and streak cache are kept as-is; callers that change
// the frequency should toggle or re-run stats to refresh the cache.
func (m *Manager) UpdateHabit(habit models.Habit) error {
	user, err := m.Current()
	if err != nil {
		return err
	}

	if _, ok := user.Habits[habit.ID]; !ok {
		return ErrHabitNotFound
	}

	user.Habits[habit.ID] = habit
	return m.store.SaveUser(user)
}

func (m *Manager) DeleteHabit(id string) error {
	user, err := m.Current()
	if err != nil {
		return err
	}

	if _, ok := user.Habits[id]; !ok {
		return ErrHabitNotFound
	}

	delete(user.Habits, id)
	return m.store.SaveUser(user)
}

// Habit resolves a habit by ID, or by exact name when no ID matches.
func (m *Manager) Habit(ref string) (models.Habit, error) {
	user, err := m.Current()
	if err != nil {
		return models.Habit{}, err
	}

	if habit, ok := user.Habits[ref]; ok {
		return habit, nil
	}
	for _, habit := range user.Habits {
		if strings.EqualFold(habit.Name, ref) {
			return habit, nil
		}
	}

	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
}

// Habits returns the current user's habits sorted by creation time so list
// output is stable across runs.
func (m *Manager) Habits() ([]models.Habit, error) {
	user, err := m.Current()
	if err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(user.Habits))
	for _, habit := range user.Habits {
		habits = append(habits, habit)
	}
	sortHabits(habits)

	return habits, nil
}

// Toggle flips a habit's completion for the given date and recomputes the
// streak cache using that same date as the reference, then persists the
// updated habit.
func (m *Manager) Toggle(habitRef string, date time.Time) (models.Habit, error) {
	user, err := m.Current()
	if err != nil {
		return models.Habit{}, err
	}

	habit, err := m.Habit(habitRef)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Completions = stats.ToggleCompletion(habit.Completions, dateutil.Key(date))

	streaks, err := stats.ComputeStreaks(habit.Schedule, habit.Completions, date)
	if err != nil {
		return models.Habit{}, err
	}
	habit.CurrentStreak = streaks.Current
	habit.LongestStreak = streaks.Longest

	user.Habits[habit.ID] = habit
	if err := m.store.SaveUser(user); err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

// SetMood records the day's mood score (1-5).
func (m *Manager) SetMood(date time.Time, score int) error {
	if score < constants.MoodMin || score > constants.MoodMax {
		return ErrMoodOutOfRange
	}

	user, err := m.Current()
	if err != nil {
		return err
	}

	user.Moods[dateutil.Key(date)] = score
	return m.store.SaveUser(user)
}

// Mood returns the recorded score for a day and whether one exists.
func (m *Manager) Mood(date time.Time) (int, bool, error) {
	user, err := m.Current()
	if err != nil {
		return 0, false, err
	}

	score, ok := user.Moods[dateutil.Key(date)]
	return score, ok, nil
}

// SetReflection records the day's journal text. Empty text removes the entry.
func (m *Manager) SetReflection(date time.Time, text string) error {
	user, err := m.Current()
	if err != nil {
		return err
	}

	key := dateutil.Key(date)
	if strings.TrimSpace(text) == "" {
		delete(user.Reflections, key)
	} else {
		user.Reflections[key] = text
	}
	return m.store.SaveUser(user)
}

// Reflection returns the journal text for a day and whether one exists.
func (m *Manager) Reflection(date time.Time) (string, bool, error) {
	user, err := m.Current()
	if err != nil {
		return "", false, err
	}

	text, ok := user.Reflections[dateutil.Key(date)]
	return text, ok, nil
}

func sortHabits(habits []models.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].Name < habits[j].Name
	})
}
