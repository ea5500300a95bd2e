package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag           = "dsn"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"

	dsnEnvName = "STOREFRONT_POSTGRES_DSN"
)

func main() {
	dsn, migrationsPath, down := getFlagsValues()
	validateFlags(dsn, migrationsPath)
	makeMigrations(dsn, migrationsPath, down)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default().With("op", "migrator"),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (dsn, migrations string, down bool) {
	dsnArg := pflag.StringP(dsnFlag, "d", os.Getenv(dsnEnvName), "postgres DSN")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "./migrations", "")
	downArg := pflag.Bool(downFlag, false, "revert all migrations")
	pflag.Parse()
	return *dsnArg, *migrationsPath, *downArg
}

func validateFlags(dsn, migrationsPath string) {
	var errs []error

	if dsn == "" {
		errs = append(errs, fmt.Errorf("--%s flag or %s: required", dsnFlag, dsnEnvName))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

// databaseURL points the DSN at the pgx v5 driver of migrate.
func databaseURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func makeMigrations(dsn, migrationsPath string, down bool) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		databaseURL(dsn),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	m.Log = NewMigrationLogger()

	apply := m.Up
	if down {
		apply = m.Down
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied\n")
}

func fallDown() {
	os.Exit(2)
}
