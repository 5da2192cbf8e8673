package store

import (
	"context"
	"errors"
	"fmt"

	"referral-server/internal/store/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations brings the schema up to date using the migration files
// embedded in the binary. Running it against an up to date database is a no-op.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	driver, err := migratepgx.WithInstance(s.db.DB, &migratepgx.Config{})
	if err != nil {
		s.logger.Error(ctx, "failed to create migration driver", err)
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Error(ctx, "failed to apply migrations", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	s.logger.Info(ctx, "database migrations applied")
	return nil
}
