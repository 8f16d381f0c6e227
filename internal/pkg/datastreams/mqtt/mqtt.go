// Package mqtt republishes calculations on MQTT topics.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

// DefaultPrefix is the topic prefix used when none is configured.
const DefaultPrefix = "elecalc/calc"

const connectTimeout = 5 * time.Second

// Config selects the broker, topic prefix and quality of service.
type Config struct {
	Broker string `json:"Broker" yaml:"broker"`
	Prefix string `json:"Prefix" yaml:"prefix"`
	QoS    byte   `json:"QoS" yaml:"qos"`
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
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: Broker is required")
	}
	if cfg.QoS > 2 {
		return nil, errors.New("mqtt: QoS must be 0, 1 or 2")
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

func topic(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

func (h *Handler) clientOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(h.config.Broker).
		SetClientID("elecalc-" + h.pid.String()).
		SetAutoReconnect(true)
}

// connect waits for a connect token, turning an expired wait into an error.
func connect(token mqtt.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timed out after %v", timeout)
	}
	return token.Error()
}

// Process connects to the broker and publishes until Stop is called or
// the publisher closes.
func (h *Handler) Process() {
	if !h.life.Start() {
		return
	}
	defer h.life.Done()
	log.Println("[MQTT client] Process Started")

	client := mqtt.NewClient(h.clientOptions())
	if err := connect(client.Connect(), connectTimeout); err != nil {
		log.Println("[MQTT client] unable to connect:", err)
		h.drain()
		return
	}
	defer client.Disconnect(250)

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
			data, err := json.Marshal(c)
			if err != nil {
				continue
			}
			t := client.Publish(topic(h.config.Prefix, c.Name), h.config.QoS, false, data)
			if t.WaitTimeout(connectTimeout) && t.Error() != nil {
				log.Printf("[MQTT client] unable to publish: %v", t.Error())
			}
		case <-h.life.Stopping():
			break loop
		}
	}
	log.Println("[MQTT client] Process Shutdown")
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
