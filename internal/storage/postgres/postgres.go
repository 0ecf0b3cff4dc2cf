package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/jamakers/platform/pkg/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements storage.Store on Postgres via sqlx. Statements run one at
// a time; consistency relies on the database's own guarantees.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// New connects, runs pending migrations and returns the store.
func New(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("postgres store ready")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

// noRows maps sql.ErrNoRows to the contract's (nil, nil) not-found value.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
