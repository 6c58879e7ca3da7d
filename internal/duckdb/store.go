// Package duckdb provides an in-memory DuckDB index of variant records
// keyed by dataset, chromosome and position.
package duckdb

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages an in-memory DuckDB connection.
type Store struct {
	db *sql.DB
}

// Open creates an in-memory DuckDB database. Nothing is written to disk.
func Open() (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		dataset VARCHAR,
		chrom VARCHAR,
		pos BIGINT,
		ord BIGINT
	)`)
	return err
}
