// Package sqlstore keeps project state in a two-column SQL table. Both
// PostgreSQL and MySQL are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/ohowland/elecalc/internal/pkg/project"
)

// Supported drivers
const (
	Postgres = "postgres"
	MySQL    = "mysql"
)

const defaultTable = "project_state"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config selects the driver and database.
type Config struct {
	Driver string `json:"Driver" yaml:"driver"`
	DSN    string `json:"DSN" yaml:"dsn"`
	Table  string `json:"Table" yaml:"table"`
}

// Store is a project.KV over a SQL table.
type Store struct {
	db     *sql.DB
	driver string
	table  string
}

func (cfg *Config) validate() error {
	if cfg.Driver != Postgres && cfg.Driver != MySQL {
		return fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return errors.New("sqlstore: DSN is required")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if !tableName.MatchString(cfg.Table) {
		return fmt.Errorf("sqlstore: invalid table name %q", cfg.Table)
	}
	return nil
}

// Open connects to the database and creates the table if it is missing.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, driver: cfg.Driver, table: cfg.Table}
	stmt := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (k VARCHAR(191) PRIMARY KEY, v TEXT NOT NULL)`
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Rebind rewrites ? placeholders into the driver's syntax.
func Rebind(driver, query string) string {
	if driver != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) q(query string) string {
	return Rebind(s.driver, strings.Replace(query, "{table}", s.table, -1))
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT v FROM {table} WHERE k = ?`), key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, project.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// Set replaces the row in one transaction; the delete-insert pair avoids
// the dialects' differing upsert syntax.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM {table} WHERE k = ?`), key); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q(`INSERT INTO {table} (k, v) VALUES (?, ?)`), key, string(value)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM {table} WHERE k = ?`), key)
	return err
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
