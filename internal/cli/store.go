package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifestock/internal/config"
	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/keyring"
	"github.com/julianstephens/lifestock/internal/logger"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/storage/postgres"
	"github.com/julianstephens/lifestock/internal/storage/sqlite"
)

// OpenStore selects the backend for database without connecting to it.
// "keyring" resolves the connection string from LIFESTOCK_DB_CONNECTION or the
// OS keyring under profile; those sources may carry a password. A connection
// string given directly must not.
func OpenStore(database, profile string) (storage.Provider, error) {
	switch {
	case database == constants.DatabaseKeyring:
		connStr, source, err := keyring.ResolveConnectionString(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve connection string: %w", err)
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		logger.Debug("Using PostgreSQL storage", "source", source)
		return postgres.New(connStr), nil
	case config.IsPostgres(database):
		if _, err := postgres.ValidateConnString(database); err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL storage", "source", "connection string")
		return postgres.New(database), nil
	default:
		logger.Debug("Using SQLite storage", "path", database)
		return sqlite.NewStore(database), nil
	}
}
