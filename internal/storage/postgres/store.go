package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/invoice-dashboard/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.InvoiceStore   = (*Store)(nil)
	_ storage.CustomerStore  = (*Store)(nil)
	_ storage.DashboardStore = (*Store)(nil)
	_ storage.UserStore      = (*Store)(nil)
	_ storage.SeedStore      = (*Store)(nil)
	_ storage.Pinger         = (*Store)(nil)
)

// Store provides Postgres-backed persistence for the dashboard.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres. The schema is created by the seed loader, not here.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that a connection can be acquired and used.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrAlreadyExists
	}
	return err
}
