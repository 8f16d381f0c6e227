package mqtt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/ohowland/elecalc/internal/pkg/msg"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, topic(DefaultPrefix, "cable"), "elecalc/calc/cable")
	assert.Equal(t, topic("site/panel-2/", "balance"), "site/panel-2/balance")
}

func TestNew(t *testing.T) {
	pub := msg.NewPublisher(uuid.New())

	_, err := New(Config{}, pub)
	assert.ErrorContains(t, err, "Broker is required")

	_, err = New(Config{Broker: "tcp://localhost:1883", QoS: 3}, pub)
	assert.ErrorContains(t, err, "QoS")

	h, err := New(Config{Broker: "tcp://localhost:1883"}, pub)
	assert.NilError(t, err)
	assert.Equal(t, h.config.Prefix, DefaultPrefix)

	opts := h.clientOptions()
	assert.Equal(t, len(opts.Servers), 1)
	assert.Equal(t, opts.Servers[0].Host, "localhost:1883")
	assert.Equal(t, opts.ClientID, "elecalc-"+h.PID().String())
}

// pendingToken never completes unless err is set.
type pendingToken struct {
	err error
}

func (t pendingToken) Wait() bool                     { return t.err != nil }
func (t pendingToken) WaitTimeout(time.Duration) bool { return t.err != nil }
func (t pendingToken) Error() error                   { return t.err }

func TestConnectTimeout(t *testing.T) {
	err := connect(pendingToken{}, 10*time.Millisecond)
	assert.ErrorContains(t, err, "timed out after 10ms")

	err = connect(pendingToken{err: errors.New("not authorized")}, time.Second)
	assert.ErrorContains(t, err, "not authorized")
}
