// Package sqldb implementa facility.Store sobre database/sql. Lo comparten los
// drivers sqlite y postgres; las diferencias de dialecto se limitan a placeholders
// y a cómo se escriben las fechas.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/logger"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind reescribe los '?' como $1..$n para postgres.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// dateArg: sqlite guarda TEXT "YYYY-MM-DD"; postgres usa DATE.
func (d Dialect) dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	day := facility.DateOf(*t)
	if d == Postgres {
		return day
	}
	return day.Format(time.DateOnly)
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db      *sql.DB
	q       querier
	tx      *sql.Tx
	dialect Dialect
	log     logger.Logger
}

var _ facility.Store = (*Store)(nil)

func New(db *sql.DB, dialect Dialect, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		db:      db,
		q:       db,
		dialect: dialect,
		log:     log.With(map[string]any{"component": "sqldb", "dialect": dialect.String()}),
	}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Animals() facility.AnimalRepository       { return animalRepo{s} }
func (s *Store) Owners() facility.OwnerRepository         { return ownerRepo{s} }
func (s *Store) Boxes() facility.BoxRepository            { return boxRepo{s} }
func (s *Store) Treatments() facility.TreatmentRepository { return treatmentRepo{s} }

// Atomic corre fn dentro de una transacción; commit si fn devuelve nil, rollback si no
// (también ante panic). Dentro de una transacción reutiliza la misma.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx facility.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("failed to begin transaction", map[string]any{"error": err.Error()})
		return &facility.StorageError{Op: "tx", Err: fmt.Errorf("begin: %w", err)}
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Error("failed to roll back transaction after panic", map[string]any{"error": rbErr.Error()})
			}
			panic(p)
		}
	}()

	txStore := &Store{db: s.db, q: tx, tx: tx, dialect: s.dialect, log: s.log}
	if err := fn(ctx, txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("failed to roll back transaction", map[string]any{
				"rollback_error": rbErr.Error(),
				"original_error": err.Error(),
			})
			return &facility.StorageError{Op: "tx", Err: fmt.Errorf("rollback: %v (original error: %w)", rbErr, err)}
		}
		s.log.Debug("rolled back transaction", map[string]any{"error": err.Error()})
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("failed to commit transaction", map[string]any{"error": err.Error()})
		return &facility.StorageError{Op: "tx", Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// execAffecting devuelve NotFound si la sentencia no tocó ninguna fila.
func (s *Store) execAffecting(ctx context.Context, entity, op, id, query string, args ...any) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return facility.WrapStorage(entity, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return facility.WrapStorage(entity, op, err)
	}
	if n == 0 {
		return facility.NotFound(entity, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullDate acepta lo que devuelva cada driver: time.Time (pgx DATE) o texto (sqlite TEXT).
type nullDate struct {
	Time  time.Time
	Valid bool
}

func (n *nullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = facility.DateOf(v), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("unsupported date type %T", src)
	}
}

func (n *nullDate) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		n.Time, n.Valid = time.Time{}, false
		return nil
	}
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	n.Time, n.Valid = t, true
	return nil
}

func (n nullDate) ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
