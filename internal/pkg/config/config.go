// Package config loads the application file. Each package owns the
// section it is configured by; this package only aggregates them.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ohowland/elecalc/internal/pkg/database/mongodb"
	"github.com/ohowland/elecalc/internal/pkg/database/sqldb"
	"github.com/ohowland/elecalc/internal/pkg/datastreams/mqtt"
	"github.com/ohowland/elecalc/internal/pkg/datastreams/natshandler"
	"github.com/ohowland/elecalc/internal/pkg/meter"
	"github.com/ohowland/elecalc/internal/pkg/project"
	"github.com/ohowland/elecalc/internal/pkg/project/filestore"
	"github.com/ohowland/elecalc/internal/pkg/project/memstore"
	"github.com/ohowland/elecalc/internal/pkg/project/mongostore"
	"github.com/ohowland/elecalc/internal/pkg/project/sqlstore"
	"github.com/ohowland/elecalc/internal/pkg/webservice"
)

// Store backends
const (
	FileBackend   = "file"
	MemoryBackend = "memory"
	MongoBackend  = "mongo"
	SQLBackend    = "sql"
)

// Store selects and configures the project backend.
type Store struct {
	Backend string            `json:"Backend" yaml:"backend"`
	Dir     string            `json:"Dir" yaml:"dir"`
	Mongo   mongostore.Config `json:"Mongo" yaml:"mongo"`
	SQL     sqlstore.Config   `json:"SQL" yaml:"sql"`
}

// History enables the MongoDB calculation history.
type History struct {
	Enabled        bool `json:"Enabled" yaml:"enabled"`
	mongodb.Config `yaml:",inline"`
}

// SQLHistory enables the SQL calculation history.
type SQLHistory struct {
	Enabled      bool `json:"Enabled" yaml:"enabled"`
	sqldb.Config `yaml:",inline"`
}

// MQTT enables calculation fan-out over MQTT.
type MQTT struct {
	Enabled     bool `json:"Enabled" yaml:"enabled"`
	mqtt.Config `yaml:",inline"`
}

// NATS enables calculation fan-out over NATS.
type NATS struct {
	Enabled            bool `json:"Enabled" yaml:"enabled"`
	natshandler.Config `yaml:",inline"`
}

// Config is the application file.
type Config struct {
	Webservice webservice.Config `json:"Webservice" yaml:"webservice"`
	Store      Store             `json:"Store" yaml:"store"`
	History    History           `json:"History" yaml:"history"`
	SQLHistory SQLHistory        `json:"SQLHistory" yaml:"sqlhistory"`
	NATS       NATS              `json:"NATS" yaml:"nats"`
	MQTT       MQTT              `json:"MQTT" yaml:"mqtt"`
	Meter      meter.Config      `json:"Meter" yaml:"meter"`
}

// DefaultDir is where the file backend keeps projects by default.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".elecalc"
	}
	return filepath.Join(home, ".elecalc")
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Webservice: webservice.Config{Listen: webservice.DefaultListen},
		Store:      Store{Backend: FileBackend, Dir: DefaultDir()},
		NATS:       NATS{Config: natshandler.Config{Prefix: natshandler.DefaultPrefix}},
		MQTT:       MQTT{Config: mqtt.Config{Prefix: mqtt.DefaultPrefix}},
	}
}

// Load reads a .json, .yaml or .yml file over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Open returns the configured project backend and a function releasing it.
func (s Store) Open(ctx context.Context) (project.KV, func() error, error) {
	nop := func() error { return nil }
	switch s.Backend {
	case "", FileBackend:
		dir := s.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		kv, err := filestore.New(dir)
		return kv, nop, err
	case MemoryBackend:
		return memstore.New(), nop, nil
	case MongoBackend:
		kv, err := mongostore.New(ctx, s.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() error { return kv.Close(context.Background()) }, nil
	case SQLBackend:
		kv, err := sqlstore.Open(ctx, s.SQL)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	}
	return nil, nil, fmt.Errorf("config: unknown store backend %q", s.Backend)
}
