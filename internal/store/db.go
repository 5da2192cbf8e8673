package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referral-server/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintError is a row the database refused because it breaks an integrity
// constraint. Column is empty when the constraint does not name one column.
type ConstraintError struct {
	Constraint string
	Column     string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %s violated", e.Constraint)
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// asConstraintError recognises integrity constraint violations (SQLSTATE class 23).
func asConstraintError(err error) (*ConstraintError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || !strings.HasPrefix(pgErr.Code, "23") {
		return nil, false
	}

	column := pgErr.ColumnName
	if column == "" {
		// Column checks are named <table>_<column>_check.
		name := pgErr.ConstraintName
		prefix := pgErr.TableName + "_"
		if pgErr.TableName != "" && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, "_check") {
			column = strings.TrimSuffix(strings.TrimPrefix(name, prefix), "_check")
		}
	}
	return &ConstraintError{Constraint: pgErr.ConstraintName, Column: column}, true
}

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

// New opens a lazily connected pool. An unreachable database surfaces on the
// first query, not here.
func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	return Store{db: db, logger: logger}, nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
