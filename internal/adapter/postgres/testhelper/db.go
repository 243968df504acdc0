// Package testhelper runs one PostgreSQL container per test binary for the
// repository integration tests. Tests using it are skipped under -short.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/postgres"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "vocab"
	pgPassword = "vocab"
	pgDatabase = "vocab_test"
)

var (
	container struct {
		once sync.Once
		dsn  string
		err  error
	}
)

// Pool returns a pool on the migrated shared database, built the same way
// the server builds its own. It is closed when the test ends.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in -short mode")
	}

	container.once.Do(func() {
		container.dsn, container.err = startPostgres()
	})
	if container.err != nil {
		t.Fatalf("postgres container: %v", container.err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		DSN:      container.dsn,
		MaxConns: 4,
		MinConns: 1,
	})
	if err != nil {
		t.Fatalf("postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// EmptyVocab clears the vocab table so ids start at 1 again.
func EmptyVocab(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE vocab RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate vocab: %v", err)
	}
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// postgres restarts once after initdb; the second line is the real one
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("endpoint: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase)

	if err := postgres.Migrate(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	return dsn, nil
}
