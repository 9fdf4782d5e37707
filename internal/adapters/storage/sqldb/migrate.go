package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"animal-facility/internal/platform/logger"
)

// goose usa estado global (base FS, dialecto, logger): serializamos las corridas.
var migrateMu sync.Mutex

const migrationTable = "schema_migrations"

// Migrate aplica las migraciones embebidas de fsys (archivos *.sql en la raíz).
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, fsys fs.FS, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: log.With(map[string]any{"component": "migrations"})})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Debug("schema up to date", map[string]any{"dialect": dialect.String(), "version": version})
	return nil
}

func gooseDialect(d Dialect) string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// gooseLogger adapta goose.Logger al logger de la app; goose loguea en Printf cada migración aplicada.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}
