// Package testdb prepares a PostgreSQL database with the tree_life fixture
// schema for integration tests. The schema is owned by the deployment, not by
// the service, so it is only ever applied here.
package testdb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"

	"github.com/mtlprog/treelife/internal/database"
)

// DefaultURL is used when TEST_DATABASE_URL is not set.
const DefaultURL = "postgres://postgres@localhost:5432/tree_life_test?sslmode=disable"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// URL returns the test database connection string.
func URL() string {
	if u := os.Getenv("TEST_DATABASE_URL"); u != "" {
		return u
	}
	return DefaultURL
}

// Open connects to the test database, creates schema (a PostgreSQL namespace,
// one per test package so packages can run in parallel) and applies the fixture
// tables inside it. It returns an error when the database is unreachable so
// suites can skip.
func Open(ctx context.Context, schema string) (*database.DB, error) {
	databaseURL, err := withSearchPath(URL(), schema)
	if err != nil {
		return nil, err
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Pool().Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema %s: %w", schema, err)
	}

	if err := applySchema(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func withSearchPath(databaseURL, schema string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse test database URL: %w", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("open fixture migrations: %w", err)
	}

	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return fmt.Errorf("create session locker: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations, goose.WithSessionLocker(locker))
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply fixture schema: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	slog.Debug("fixture schema applied", "version", version)

	return nil
}

// Reset empties every fixture table and restarts the id sequences.
func Reset(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE addresses, persons, trees RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate fixture tables: %w", err)
	}
	return nil
}
