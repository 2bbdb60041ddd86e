package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
	rollbackFlag      = "rollback"
)

func main() {
	storagePath, migrationsPath, rollback := getFlagsValues()
	validateFlags(storagePath, migrationsPath)
	run(storagePath, migrationsPath, rollback)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (storage, migrations string, rollback bool) {
	storagePath := pflag.StringP(storagePathFlag, "s", "", "postgres DSN")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "", "migrations dir")
	down := pflag.Bool(rollbackFlag, false, "revert the last migration")
	pflag.Parse()
	return *storagePath, *migrationsPath, *down
}

func validateFlags(storagePath, migrationsPath string) {
	var errs []error

	if storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

func run(storagePath, migrationsPath string, rollback bool) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", storagePath),
	)
	if err != nil {
		slog.Error("failed to init migrate", "err", err)
		fallDown()
	}

	m.Log = NewMigrationLogger()

	if rollback {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("migration failed", "err", err)
		fallDown()
	}

	if rollback {
		m.Log.Printf("last migration reverted")
		return
	}
	m.Log.Printf("migrations applied")
}

func fallDown() {
	os.Exit(2)
}
