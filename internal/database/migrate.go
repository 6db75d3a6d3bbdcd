package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dir := "migrations/" + driver
	switch driver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
