package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies all pending embedded migrations.
func Migrate(connString string) error {
	slog.Default().Info(LogMsgMigrationsArmed)

	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf(ErrMsgMigrationFailed, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf(ErrMsgMigrationFailed, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf(ErrMsgMigrationFailed, err)
	}

	slog.Default().Info(LogMsgMigrationsDone)
	return nil
}
