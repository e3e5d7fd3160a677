package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitduel/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a resolved connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers a read.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// ResolveConnection picks the storage target in order: the explicit flag
// value, the HABITDUEL_DB_CONNECTION environment variable, then the keyring.
// An empty result with SourceNone means no target was configured; keyring
// failures are not errors at that point.
func ResolveConnection(flagValue string) (string, Source) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, SourceFlag
	}
	if v := strings.TrimSpace(os.Getenv(constants.ConnectionEnvVar)); v != "" {
		return v, SourceEnv
	}
	if v, err := GetConnectionString(); err == nil && v != "" {
		return v, SourceKeyring
	}
	return "", SourceNone
}
