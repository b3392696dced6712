package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

// dbOps is the query surface shared by *sqlx.DB and *sqlx.Tx, so every query
// method works the same inside and outside a transaction.
type dbOps interface {
	sqlx.Ext
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
}

type DB struct {
	dbOps
	root *sqlx.DB
	inTx bool
}

// DefaultPath returns the database file location inside the data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, constants.DefaultDBFileName)
}

func NewSQLiteDB(dsn string) (*DB, error) {
	sqlDB, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// SQLite serializes writers; one connection also keeps the pragmas below
	// in effect for every query.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	db := &DB{dbOps: sqlDB, root: sqlDB}

	if err := db.migrate(); err != nil {
		sqlDB.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.root.Close()
}

// RunInTx runs fn against a transaction-scoped DB. The transaction commits
// when fn returns nil. Nested calls reuse the outer transaction.
func (db *DB) RunInTx(ctx context.Context, fn func(tx *DB) error) error {
	if db.inTx {
		return fn(db)
	}

	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txDB := &DB{
		dbOps: tx,
		root:  db.root,
		inTx:  true,
	}

	if err := fn(txDB); err != nil {
		return err
	}
	return tx.Commit()
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (db *DB) CheckIntegrity() error {
	var result string
	if err := db.Get(&result, "PRAGMA integrity_check"); err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

// selectIn runs a query containing a single "IN (?)" placeholder bound to ids.
func selectIn(q dbOps, dest interface{}, query string, ids []string) error {
	expanded, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return sqlx.Select(q, dest, q.Rebind(expanded), args...)
}

// requireAffected turns a zero row count into a NotFoundError.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFound(entity, id)
	}
	return nil
}

// requireInserted turns a zero row count from an insert-if-absent into a
// DuplicateKeyError.
func requireInserted(res sql.Result, entity, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewDuplicateKey(entity, key)
	}
	return nil
}

// getOptional is Get that maps sql.ErrNoRows to found=false.
func getOptional(q dbOps, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := q.Get(dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
