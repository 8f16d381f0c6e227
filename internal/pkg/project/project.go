// Package project saves and restores calculator form state. The state is
// one flat JSON object of field id to value, kept under a single key of a
// key-value backend.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ohowland/elecalc/internal/pkg/msg"
)

// Key is the storage key the project state lives under.
const Key = "pro_toolkit_electricistas_v1"

// Status messages returned by Service.
const (
	Saved    = "Project saved locally ✔"
	NotFound = "No saved project."
	Loaded   = "Project loaded ✔"
	Cleared  = "Project deleted."
)

// ErrNotFound is returned by KV.Get when the key holds nothing.
var ErrNotFound = errors.New("key not found")

// KV is the storage backend of a project.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// State maps form field ids to their values.
type State map[string]string

// Event is published on msg.Project after every operation.
type Event struct {
	Op      string `json:"Op"`
	Message string `json:"Message"`
}

// Service saves, loads and clears the state of a fixed set of fields.
type Service struct {
	kv        KV
	fields    []string
	publisher *msg.PubSub
}

// New returns a Service over kv for the given field ids. A nil publisher
// disables events.
func New(kv KV, fields []string, publisher *msg.PubSub) *Service {
	return &Service{
		kv:        kv,
		fields:    append([]string(nil), fields...),
		publisher: publisher,
	}
}

// Save stores the value of every known field. Fields absent from form are
// stored empty.
func (s *Service) Save(ctx context.Context, form map[string]string) (string, error) {
	state := make(State, len(s.fields))
	for _, id := range s.fields {
		state[id] = form[id]
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	s.publish("save", Saved)
	return Saved, nil
}

// Load returns the saved values of the known fields. When nothing is
// saved the state is nil and the message says so.
func (s *Service) Load(ctx context.Context) (State, string, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		s.publish("load", NotFound)
		return nil, NotFound, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load project: %w", err)
	}

	saved := make(State)
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, "", fmt.Errorf("load project: malformed state: %w", err)
	}
	state := make(State, len(saved))
	for _, id := range s.fields {
		if v, ok := saved[id]; ok {
			state[id] = v
		}
	}
	s.publish("load", Loaded)
	return state, Loaded, nil
}

// Clear removes the saved state.
func (s *Service) Clear(ctx context.Context) (string, error) {
	if err := s.kv.Delete(ctx, Key); err != nil && !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("clear project: %w", err)
	}
	s.publish("clear", Cleared)
	return Cleared, nil
}

func (s *Service) publish(op, message string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(msg.Project, Event{Op: op, Message: message})
}
