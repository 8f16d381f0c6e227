// Package mongodb records every calculation in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

// Config locates the history collection.
type Config struct {
	URI        string `json:"URI" yaml:"uri"`
	Database   string `json:"Database" yaml:"database"`
	Collection string `json:"Collection" yaml:"collection"`
}

const (
	defaultCollection = "calculations"
	writeTimeout      = 5 * time.Second
)

// Handler writes calculations received from a publisher.
type Handler struct {
	inbox     <-chan msg.Msg
	pid       uuid.UUID
	config    Config
	publisher msg.Publisher
	life      *msg.Lifecycle
}

// New subscribes a Handler to the publisher's calculations.
func New(cfg Config, publisher msg.Publisher) (*Handler, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongodb: URI and Database are required")
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
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

func calculationDoc(c toolkit.Calculation) bson.M {
	return bson.M{
		"_id":    c.ID.String(),
		"name":   c.Name,
		"fields": map[string]string(c.Fields),
		"output": c.Output,
		"at":     c.At,
	}
}

// Process connects to MongoDB and upserts calculations until Stop is
// called or the publisher closes.
func (h *Handler) Process() {
	if !h.life.Start() {
		return
	}
	defer h.life.Done()

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(h.config.URI))
	if err != nil {
		log.Println("[Mongo]", err)
		h.drain()
		return
	}
	defer client.Disconnect(ctx)
	coll := client.Database(h.config.Database).Collection(h.config.Collection)

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
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			_, err := coll.ReplaceOne(
				wctx,
				bson.M{"_id": c.ID.String()},
				calculationDoc(c),
				options.Replace().SetUpsert(true),
			)
			cancel()
			if err != nil {
				log.Println("[Mongo] upsert:", err)
			}
		case <-h.life.Stopping():
			break loop
		}
	}
	log.Println("[Mongo] Process Shutdown")
}

// drain discards messages so the publisher never fills this inbox.
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
