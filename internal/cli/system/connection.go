package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/keyring"
	"github.com/julianstephens/habitduel/internal/storage/postgres"
)

type ConnectionCmd struct {
	Set    ConnectionSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Show   ConnectionShowCmd   `cmd:"" help:"Show the stored connection string with the password masked." default:"1"`
	Delete ConnectionDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

// ConnectionSetCmd stores database connection credentials in the OS keyring
type ConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *ConnectionSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// Embedded credentials are acceptable inside the encrypted keyring.
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  You can now use habitduel without the --config flag")
	return nil
}

// ConnectionShowCmd prints the resolved connection and where it came from.
type ConnectionShowCmd struct{}

func (cmd *ConnectionShowCmd) Run(ctx *cli.Context) error {
	connStr, source := keyring.ResolveConnection("")
	switch source {
	case keyring.SourceNone:
		fmt.Printf("No connection configured; using local storage at %s\n", constants.DefaultConfigPath)
		if !keyring.IsAvailable() {
			fmt.Println(cli.WarningStyle.Render("OS keyring is not available on this system."))
		}
		return nil
	case keyring.SourceEnv:
		fmt.Printf("From %s:\n", constants.ConnectionEnvVar)
	default:
		fmt.Println("From OS keyring:")
	}
	fmt.Println(MaskPassword(connStr))
	return nil
}

// ConnectionDeleteCmd removes database connection credentials from the OS keyring
type ConnectionDeleteCmd struct{}

func (cmd *ConnectionDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// MaskPassword hides the password of a URL or key=value connection string.
func MaskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
		return u.String()
	}

	parts := strings.Fields(connStr)
	for i, p := range parts {
		if k, _, ok := strings.Cut(p, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
