// Package migration aplica las migraciones SQL de ./migrations al arrancar (golang-migrate).
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registra el esquema pgx5://
	_ "github.com/golang-migrate/migrate/v4/source/file"     // lee los .sql del disco
	"github.com/rs/zerolog"
)

// RunUp aplica todas las migraciones pendientes. Una base en estado dirty corta el arranque.
func RunUp(dsn, migrationsPath string, log zerolog.Logger) error {
	m, err := migrate.New("file://"+migrationsPath, toPgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Error().Err(srcErr).Msg("migration: cerrar source")
		}
		if dbErr != nil {
			log.Error().Err(dbErr).Msg("migration: cerrar db")
		}
	}()
	m.Log = &migrateLogger{log: log}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: versión actual: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: base en estado dirty en la versión %d", from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Uint("version", from).Msg("migraciones al día")
			return nil
		}
		return fmt.Errorf("migration: up: %w", err)
	}
	to, _, _ := m.Version()
	log.Info().Uint("from", from).Uint("to", to).Msg("migraciones aplicadas")
	return nil
}

// toPgx5URL adapta postgres:// y postgresql:// al esquema que registra el driver pgx/v5.
func toPgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

type migrateLogger struct {
	log zerolog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l *migrateLogger) Verbose() bool {
	return l.log.GetLevel() <= zerolog.DebugLevel
}
