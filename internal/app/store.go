package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/postgres"
	pgvocab "github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/postgres/vocab"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/sqlite"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// Store is the vocabulary repository contract shared by both drivers.
type Store interface {
	FetchPage(ctx context.Context, offset, limit int) ([]domain.VocabularyItem, error)
	GetByID(ctx context.Context, id int64) (*domain.VocabularyItem, error)
	Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error)
	Delete(ctx context.Context, id int64) error
	InsertRows(ctx context.Context, rows []domain.NewVocabulary) (int, error)
	Ping(ctx context.Context) error
}

var (
	_ Store = (*pgvocab.Repo)(nil)
	_ Store = (*sqlite.Repo)(nil)
)

// OpenStore connects to the configured driver, applies migrations when
// enabled and returns the repository with its close function.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DSN, logger); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgvocab.New(pool, postgres.NewTxManager(pool)), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.AutoMigrate, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewRepo(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// MigrateStore applies migrations for the configured driver without serving.
func MigrateStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Migrate(ctx, cfg.DSN, logger)
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, true, logger)
		if err != nil {
			return err
		}
		return db.Close()
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
