package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"animal-facility/internal/adapters/storage/sqldb"
	"animal-facility/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var ErrDSNRequired = errors.New("postgres dsn required")

// Open abre una conexión pool a Postgres usando pgx (database/sql), aplica
// las migraciones y devuelve el store.
func Open(ctx context.Context, dsn string, log logger.Logger) (*sqldb.Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrDSNRequired
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// defaults razonables para un CLI de un solo usuario
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	migrations, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqldb.Migrate(ctx, db, sqldb.Postgres, migrations, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqldb.New(db, sqldb.Postgres, log), nil
}
