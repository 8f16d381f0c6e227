package natshandler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"
	"gotest.tools/v3/assert"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, subject(DefaultPrefix, "ohm"), "elecalc.calc.ohm")
	assert.Equal(t, subject("site.", "cable"), "site.cable")
}

func TestPayload(t *testing.T) {
	c := toolkit.Calculation{
		ID:     uuid.New(),
		Name:   "ohm",
		Fields: toolkit.Form{"ohmV": "12"},
		Output: "Enter two values to compute the third.",
		At:     time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := payload(c)
	assert.NilError(t, err)

	var got toolkit.Calculation
	assert.NilError(t, json.Unmarshal(data, &got))
	assert.Equal(t, got.ID, c.ID)
	assert.Equal(t, got.Output, c.Output)
}

func TestNewDefaults(t *testing.T) {
	h, err := New(Config{}, msg.NewPublisher(uuid.New()))
	assert.NilError(t, err)
	assert.Equal(t, h.config.Server, nats.DefaultURL)
	assert.Equal(t, h.config.Prefix, DefaultPrefix)
}

func TestStopWithoutServer(t *testing.T) {
	pub := msg.NewPublisher(uuid.New())
	h, err := New(Config{Server: "nats://127.0.0.1:1"}, pub)
	assert.NilError(t, err)

	go h.Process()
	h.Stop()

	// unsubscribed, so the pid can subscribe again
	_, err = pub.Subscribe(h.PID(), msg.Calculation)
	assert.NilError(t, err)
}
