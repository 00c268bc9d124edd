package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewSQLRepositories wires the sqlx implementations of every repository onto db
func NewSQLRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Properties: NewPropertyRepository(db),
		Units:      NewUnitRepository(db),
		Tenants:    NewTenantRepository(db),
		Leases:     NewLeaseRepository(db),
		Payments:   NewPaymentRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func requireAffected(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// insertReturningID runs an INSERT ... RETURNING statement and scans the new id
func insertReturningID(ctx context.Context, q sqlx.QueryerContext, query string, dest *int64, args ...interface{}) error {
	if err := q.QueryRowxContext(ctx, query, args...).Scan(dest); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}
