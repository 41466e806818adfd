package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/config"
	"github.com/Kerhoff/BozorlikBot/internal/repository"
	"github.com/Kerhoff/BozorlikBot/internal/repository/jsonfile"
	"github.com/Kerhoff/BozorlikBot/internal/repository/postgres"
	"github.com/Kerhoff/BozorlikBot/internal/repository/sqlite"
)

// openExpenseRepository opens the configured durable store. SQL stores are
// migrated before use. The returned function releases the store.
func openExpenseRepository(cfg *config.Config, l *logrus.Logger) (repository.ExpenseRepository, func() error, error) {
	if cfg.StorageDriver == config.StorageFile {
		l.WithField("path", cfg.ExpensesFile).Info("Using JSON file expense store")
		return jsonfile.NewExpenseRepository(cfg.ExpensesFile, l), func() error { return nil }, nil
	}

	db, err := config.NewDatabase(cfg.StorageDriver, cfg.DatabaseURL, l)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var repo repository.ExpenseRepository
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repo = postgres.NewExpenseRepository(db.DB)
	case config.StorageSQLite:
		repo = sqlite.NewExpenseRepository(db.DB)
	}
	l.WithField("driver", cfg.StorageDriver).Info("Using SQL expense store")

	return repo, db.Close, nil
}
