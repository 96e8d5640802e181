package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/config"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/db"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/pathutil"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/store"
)

// openStore builds the persistence backend named by the configuration.
// A connection failure here is fatal to the command; there is no
// fallback between backends.
func openStore(cfg *config.Config, resolver *pathutil.PathResolver) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendCSV:
		slog.Debug("using CSV storage", "path", resolver.GetCSVPath())
		return store.NewCSVStore(resolver.GetCSVPath()), nil

	case config.BackendSQL:
		driver := db.Driver(cfg.Database.Driver)
		if driver == db.DriverPostgres {
			if err := cfg.Validate("database.host", "database.user", "database.name"); err != nil {
				return nil, err
			}
		}

		dbPath := cfg.Database.Path
		if dbPath == "" {
			dbPath = resolver.GetDatabasePath()
		}

		slog.Debug("using SQL storage", "driver", string(driver), "path", dbPath)
		conn, err := db.Open(db.Config{
			Driver:   driver,
			Path:     dbPath,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		return store.NewSQLStore(conn), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %q or %q)",
			cfg.Storage.Backend, config.BackendCSV, config.BackendSQL)
	}
}
