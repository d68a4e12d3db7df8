package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkarlsen/tally/internal/models"
	"github.com/mkarlsen/tally/internal/storage"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return New(store)
}

func signedUpManager(t *testing.T) *Manager {
	t.Helper()
	m := newManager(t)
	if _, err := m.SignUp("alice", "hunter2"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	return m
}

func TestSignUp_SignsIn(t *testing.T) {
	m := newManager(t)

	user, err := m.SignUp("alice", "hunter2")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %q", user.Username)
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Error("password was not hashed")
	}

	current, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed after sign-up: %v", err)
	}
	if current.Username != "alice" {
		t.Errorf("expected alice to be signed in, got %q", current.Username)
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	m := signedUpManager(t)

	if _, err := m.SignUp("alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestSignUp_EmptyFields(t *testing.T) {
	m := newManager(t)

	if _, err := m.SignUp("", "pw"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := m.SignUp("bob", ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestSignIn(t *testing.T) {
	m := signedUpManager(t)
	if err := m.SignOut(); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	if _, err := m.Current(); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("expected ErrNotSignedIn after sign-out, got %v", err)
	}

	if _, err := m.SignIn("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := m.SignIn("nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	user, err := m.SignIn("alice", "hunter2")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %q", user.Username)
	}
}

func TestAddHabit(t *testing.T) {
	m := signedUpManager(t)

	habit, err := m.AddHabit("Read", "20 pages", models.Schedule{Frequency: models.FrequencyDaily}, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if habit.ID == "" {
		t.Error("expected a generated habit ID")
	}
	if habit.Completions == nil {
		t.Error("expected initialized completion map")
	}

	habits, err := m.Habits()
	if err != nil {
		t.Fatalf("Habits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("unexpected habit list: %+v", habits)
	}
}

func TestAddHabit_RequiresSession(t *testing.T) {
	m := newManager(t)

	if _, err := m.AddHabit("Read", "", models.Schedule{Frequency: models.FrequencyDaily}, models.DifficultyEasy); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestHabit_ResolvesByIDAndName(t *testing.T) {
	m := signedUpManager(t)

	added, err := m.AddHabit("Stretch", "", models.Schedule{Frequency: models.FrequencyDaily}, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	byID, err := m.Habit(added.ID)
	if err != nil || byID.ID != added.ID {
		t.Errorf("lookup by ID failed: %v", err)
	}

	byName, err := m.Habit("stretch")
	if err != nil || byName.ID != added.ID {
		t.Errorf("case-insensitive lookup by name failed: %v", err)
	}

	if _, err := m.Habit("missing"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestToggle_RecomputesStreaks(t *testing.T) {
	m := signedUpManager(t)

	habit, err := m.AddHabit("Run", "", models.Schedule{Frequency: models.FrequencyDaily}, models.DifficultyHard)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)

	// Complete three consecutive days ending at the reference date.
	for i := 2; i >= 0; i-- {
		if _, err := m.Toggle(habit.ID, day.AddDate(0, 0, -i)); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}

	got, err := m.Habit(habit.ID)
	if err != nil {
		t.Fatalf("Habit failed: %v", err)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("expected current streak 3, got %d", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", got.LongestStreak)
	}

	// Toggling the reference day off breaks the current streak.
	toggled, err := m.Toggle(habit.ID, day)
	if err != nil {
		t.Fatalf("Toggle off failed: %v", err)
	}
	if _, ok := toggled.Completions["2024-06-15"]; ok {
		t.Error("expected completion to be removed")
	}
	if toggled.CurrentStreak != 0 {
		t.Errorf("expected current streak 0 after untoggle, got %d", toggled.CurrentStreak)
	}
	if toggled.LongestStreak != 2 {
		t.Errorf("expected longest streak 2 after untoggle, got %d", toggled.LongestStreak)
	}
}

func TestDeleteHabit(t *testing.T) {
	m := signedUpManager(t)

	habit, err := m.AddHabit("Run", "", models.Schedule{Frequency: models.FrequencyDaily}, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	if err := m.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if err := m.DeleteHabit(habit.ID); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestSetMood(t *testing.T) {
	m := signedUpManager(t)
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)

	if err := m.SetMood(day, 0); !errors.Is(err, ErrMoodOutOfRange) {
		t.Errorf("expected ErrMoodOutOfRange for 0, got %v", err)
	}
	if err := m.SetMood(day, 6); !errors.Is(err, ErrMoodOutOfRange) {
		t.Errorf("expected ErrMoodOutOfRange for 6, got %v", err)
	}

	if err := m.SetMood(day, 4); err != nil {
		t.Fatalf("SetMood failed: %v", err)
	}

	score, ok, err := m.Mood(day)
	if err != nil {
		t.Fatalf("Mood failed: %v", err)
	}
	if !ok || score != 4 {
		t.Errorf("expected mood 4, got %d (present=%v)", score, ok)
	}

	_, ok, err = m.Mood(day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Mood failed: %v", err)
	}
	if ok {
		t.Error("expected no mood for an unrecorded day")
	}
}

func TestSetReflection(t *testing.T) {
	m := signedUpManager(t)
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)

	if err := m.SetReflection(day, "productive morning"); err != nil {
		t.Fatalf("SetReflection failed: %v", err)
	}

	text, ok, err := m.Reflection(day)
	if err != nil {
		t.Fatalf("Reflection failed: %v", err)
	}
	if !ok || text != "productive morning" {
		t.Errorf("unexpected reflection %q (present=%v)", text, ok)
	}

	// Blank text clears the entry.
	if err := m.SetReflection(day, "  "); err != nil {
		t.Fatalf("clearing reflection failed: %v", err)
	}
	_, ok, err = m.Reflection(day)
	if err != nil {
		t.Fatalf("Reflection failed: %v", err)
	}
	if ok {
		t.Error("expected reflection to be cleared")
	}
}
