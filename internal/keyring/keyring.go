// Package keyring stores remembered login credentials in the OS keyring so
// 'tally login --remember' can re-authenticate without prompting.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/mkarlsen/tally/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are stored.
	ErrNotFound = errors.New("no remembered credentials in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not usable.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Remember stores the credentials, replacing any previous entry. The secret
// is a single keyring item holding "username\npassword"; usernames are
// rejected if they would break that framing.
func Remember(username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password cannot be empty")
	}
	if strings.ContainsRune(username, '\n') {
		return errors.New("username cannot contain a newline")
	}

	secret := username + "\n" + password
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Remembered retrieves the stored credentials. Returns ErrNotFound when no
// entry exists.
func Remembered() (username, password string, err error) {
	secret, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	parts := strings.SplitN(secret, "\n", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed keyring entry, run 'tally logout --forget' and log in again")
	}
	return parts[0], parts[1], nil
}

// Forget removes the stored credentials. Returns ErrNotFound when no entry
// exists.
func Forget() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
