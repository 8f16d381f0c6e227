// Package natshandler republishes calculations on NATS subjects.
package natshandler

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

// DefaultPrefix is the subject prefix used when none is configured.
const DefaultPrefix = "elecalc.calc"

// Config selects the server and subject prefix.
type Config struct {
	Server string `json:"Server" yaml:"server"`
	Prefix string `json:"Prefix" yaml:"prefix"`
}

// Handler forwards calculations received from a publisher.
type Handler struct {
	inbox     <-chan msg.Msg
	pid       uuid.UUID
	config    Config
	publisher msg.Publisher
	life      *msg.Lifecycle
}

// New subscribes a Handler to the publisher's calculations.
func New(cfg Config, publisher msg.Publisher) (*Handler, error) {
	if cfg.Server == "" {
		cfg.Server = nats.DefaultURL
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
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

func subject(prefix, name string) string {
	return strings.TrimSuffix(prefix, ".") + "." + name
}

func payload(c toolkit.Calculation) ([]byte, error) {
	return json.Marshal(c)
}

// Process connects to the server and publishes until Stop is called or
// the publisher closes.
func (h *Handler) Process() {
	if !h.life.Start() {
		return
	}
	defer h.life.Done()
	log.Println("[NATS client] Process Started")

	nc, err := nats.Connect(h.config.Server)
	if err != nil {
		log.Println("[NATS client]", err)
		h.drain()
		return
	}
	defer nc.Close()

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
			data, err := payload(c)
			if err != nil {
				continue
			}
			if err = nc.Publish(subject(h.config.Prefix, c.Name), data); err != nil {
				log.Printf("[NATS client] unable to publish to nats server: %v", err)
			}
		case <-h.life.Stopping():
			break loop
		}
	}
	log.Println("[NATS client] Process Shutdown")
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
