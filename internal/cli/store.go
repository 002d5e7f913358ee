package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitbreaker/internal/constants"
	"github.com/julianstephens/habitbreaker/internal/keyring"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/storage"
	"github.com/julianstephens/habitbreaker/internal/storage/postgres"
	"github.com/julianstephens/habitbreaker/internal/storage/sqlite"
)

// ErrEmbeddedCredentials explains how to supply a PostgreSQL password safely.
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings passed with --config must not embed a password; " +
	"store the connection string with '" + constants.AppName + " config set-connection' " +
	"or export " + constants.EnvDBConnection + " instead")

// Connection is a resolved storage location.
type Connection struct {
	// Target is a SQLite file path or a PostgreSQL connection string.
	Target   string
	Postgres bool
}

// ResolveConnection picks the storage location. An explicit --config wins;
// with the default path, the environment variable and then the OS keyring may
// supply a PostgreSQL connection string.
func ResolveConnection(config string) (Connection, error) {
	if storage.IsPostgresConnString(config) {
		if storage.HasEmbeddedCredentials(config) {
			return Connection{}, ErrEmbeddedCredentials
		}
		return Connection{Target: config, Postgres: true}, nil
	}

	if config == constants.DefaultConfigPath {
		if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
			logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
			return Connection{Target: env, Postgres: true}, nil
		}
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from keyring")
			return Connection{Target: connStr, Postgres: true}, nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}

	path, err := storage.ExpandPath(config)
	if err != nil {
		return Connection{}, fmt.Errorf("failed to expand config path: %w", err)
	}
	return Connection{Target: path}, nil
}

// OpenStore returns an unloaded provider for the resolved connection.
func OpenStore(config string) (storage.Provider, error) {
	conn, err := ResolveConnection(config)
	if err != nil {
		return nil, err
	}

	if conn.Postgres {
		// Passwords are allowed here: they came from the environment or keyring.
		if _, err := postgres.ValidateConnString(conn.Target); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("invalid connection string: %w", err)
		}
		return postgres.New(conn.Target), nil
	}
	return sqlite.NewStore(conn.Target), nil
}
