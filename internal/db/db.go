package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL backend behind a *sql.DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) gooseDialect() goose.Dialect {
	if d == DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses a private in-memory database pinned to a
// single connection. Foreign keys, WAL, and a busy timeout are set on
// every pooled connection. Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(context.Background(), db, DialectSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// OpenPostgres connects through the pgx stdlib driver and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if err := Migrate(ctx, db, DialectPostgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Handle pairs a pool with its dialect so callers can build DBTX values
// and units of work without repeating the dialect.
type Handle struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open opens the configured backend. driver is "sqlite" or "postgres".
func Open(ctx context.Context, driver, sqlitePath, postgresDSN string) (*Handle, error) {
	switch Dialect(driver) {
	case DialectPostgres:
		db, err := OpenPostgres(ctx, postgresDSN)
		if err != nil {
			return nil, err
		}
		return &Handle{DB: db, Dialect: DialectPostgres}, nil
	case DialectSQLite, "":
		db, err := OpenDB(sqlitePath)
		if err != nil {
			return nil, err
		}
		return &Handle{DB: db, Dialect: DialectSQLite}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Conn returns a DBTX bound to the pool that accepts "?" placeholders.
func (h *Handle) Conn() DBTX {
	return Bind(h.DB, h.Dialect)
}

// UnitOfWork returns a transaction manager for the pool.
func (h *Handle) UnitOfWork() UnitOfWork {
	return NewSQLUnitOfWork(h.DB, h.Dialect)
}

func (h *Handle) Close() error {
	return h.DB.Close()
}
