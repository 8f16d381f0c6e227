// Package sqldb records every calculation in a SQL table.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/project/sqlstore"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

const (
	defaultTable = "calculations"
	writeTimeout = 1 * time.Second
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config selects the driver, database and table.
type Config struct {
	Driver string `json:"Driver" yaml:"driver"`
	DSN    string `json:"DSN" yaml:"dsn"`
	Table  string `json:"Table" yaml:"table"`
}

// Handler inserts calculations received from a publisher.
type Handler struct {
	inbox     <-chan msg.Msg
	pid       uuid.UUID
	config    Config
	publisher msg.Publisher
	life      *msg.Lifecycle
}

// New subscribes a Handler to the publisher's calculations.
func New(cfg Config, publisher msg.Publisher) (*Handler, error) {
	if cfg.Driver != sqlstore.Postgres && cfg.Driver != sqlstore.MySQL {
		return nil, fmt.Errorf("sqldb: unsupported driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, errors.New("sqldb: DSN is required")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("sqldb: invalid table name %q", cfg.Table)
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	inbox, err := publisher.Subscribe(pid, msg.Calculation)
	if err != nil {
		return nil, err
	}

	return &Handler{
		inbox:     inbox,
		pid:       pid,
		config:    cfg,
		publisher: publisher,
		life:      msg.NewLifecycle(),
	}, nil
}

// PID returns the handler's PID
func (h *Handler) PID() uuid.UUID {
	return h.pid
}

func (h *Handler) statement(query string) string {
	return sqlstore.Rebind(h.config.Driver, strings.Replace(query, "{table}", h.config.Table, -1))
}

func (h *Handler) initDB(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, h.statement(
		`CREATE TABLE IF NOT EXISTS {table} (id VARCHAR(36) PRIMARY KEY, name VARCHAR(32) NOT NULL, fields TEXT NOT NULL, output TEXT NOT NULL, at TIMESTAMP NOT NULL)`))
	return err
}

// row returns the insert arguments of a calculation.
func row(c toolkit.Calculation) ([]interface{}, error) {
	fields, err := json.Marshal(c.Fields)
	if err != nil {
		return nil, err
	}
	return []interface{}{c.ID.String(), c.Name, string(fields), c.Output, c.At}, nil
}

// Process opens the database and inserts calculations until Stop is
// called or the publisher closes.
func (h *Handler) Process() {
	if !h.life.Start() {
		return
	}
	defer h.life.Done()

	db, err := sql.Open(h.config.Driver, h.config.DSN)
	if err == nil {
		err = h.initDB(context.Background(), db)
	}
	if err != nil {
		log.Println("[SQL]", err)
		if db != nil {
			db.Close()
		}
		h.drain()
		return
	}
	defer db.Close()

	insert := h.statement(`INSERT INTO {table} (id, name, fields, output, at) VALUES (?, ?, ?, ?, ?)`)
loop:
	for {
		select {
		case m, ok := <-h.inbox:
			if !ok {
				break loop
			}
			c, ok := m.Payload().(toolkit.Calculation)
			if !ok {
				continue
			}
			args, err := row(c)
			if err != nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			_, err = db.ExecContext(ctx, insert, args...)
			cancel()
			if err != nil {
				log.Printf("[SQL] error %s update db", err)
			}
		case <-h.life.Stopping():
			break loop
		}
	}
	log.Println("[SQL] Process Shutdown")
}

func (h *Handler) drain() {
	for {
		select {
		case _, ok := <-h.inbox:
			if !ok {
				return
			}
		case <-h.life.Stopping():
			return
		}
	}
}

// Stop ends Process and unsubscribes. It is safe to call before Process
// runs or more than once.
func (h *Handler) Stop() {
	h.life.Stop()
	h.publisher.Unsubscribe(h.pid)
}
