package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"animal-facility/internal/adapters/storage/sqldb"
	"animal-facility/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const DefaultPath = "facility.db"

// Open abre (o crea) la base sqlite en path, aplica las migraciones y devuelve
// el store listo para usar. Las FK se activan por conexión vía DSN.
func Open(ctx context.Context, path string, log logger.Logger) (*sqldb.Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// una sola conexión: sqlite serializa escrituras y así una tx no choca con otra
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	migrations, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqldb.Migrate(ctx, db, sqldb.SQLite, migrations, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqldb.New(db, sqldb.SQLite, log), nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}
