package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"github.com/langcentral/langcentral/internal/common"
	"github.com/langcentral/langcentral/internal/config"
	"github.com/langcentral/langcentral/internal/prefs/migrations"
)

// Store owns the database handle and the dialect-specific Repository.
type Store struct {
	db   *sql.DB
	repo Repository
}

// Repo returns the preference repository.
func (s *Store) Repo() Repository {
	return s.repo
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// OpenStore opens the configured database, verifies connectivity with a
// bounded backoff, and applies the schema migrations idempotently.
//
// The credential bytes in cfg.Password are consumed here and wiped before
// OpenStore returns, success or not.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	defer common.WipeByteArray(cfg.Password)

	var (
		driver       string
		dsn          string
		dialect      string
		migrationFS  fs.FS
		migrationDir string
		repoFor      func(db *sql.DB) Repository
	)

	switch cfg.Type {
	case config.DBTypeSQLite:
		driver = "sqlite"
		dsn = cfg.Name
		dialect = "sqlite3"
		migrationFS = migrations.SQLite
		migrationDir = "sqlite"
		repoFor = func(db *sql.DB) Repository { return NewSQLiteRepository(db) }

	case config.DBTypePostgres:
		driver = "pgx"
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, string(cfg.Password)),
			Host:     cfg.Host + ":" + cfg.Port,
			Path:     cfg.Name,
			RawQuery: "sslmode=disable",
		}
		dsn = u.String()
		dialect = "postgres"
		migrationFS = migrations.Postgres
		migrationDir = "postgres"
		repoFor = func(db *sql.DB) Repository { return NewPostgresRepository(db) }

	case config.DBTypeMySQL:
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.User, string(cfg.Password), cfg.Host, cfg.Port, cfg.Name)
		dialect = "mysql"
		migrationFS = migrations.MySQL
		migrationDir = "mysql"
		repoFor = func(db *sql.DB) Repository { return NewMySQLRepository(db) }

	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// Startup connectivity check. Individual get/save operations are never
	// retried; only this initial ping is.
	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := runMigrations(ctx, db, dialect, migrationFS, migrationDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{db: db, repo: repoFor(db)}, nil
}

func runMigrations(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, dir)
}
