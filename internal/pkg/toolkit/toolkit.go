// Package toolkit binds named form fields to the calculators and renders
// their status text. It is the layer front ends talk to.
package toolkit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/ohowland/elecalc/internal/pkg/msg"
)

// ErrUnknownCalculator is returned by Run for a name that is not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Form maps field ids to their raw text.
type Form map[string]string

// Field describes one input of a calculator form. Fields with Options are
// selections; Default fills an empty value.
type Field struct {
	ID      string   `json:"ID"`
	Label   string   `json:"Label"`
	Options []string `json:"Options,omitempty"`
	Default string   `json:"Default,omitempty"`
}

// Calculator is a named form over one of the calc packages.
type Calculator struct {
	Name    string  `json:"Name"`
	Title   string  `json:"Title"`
	Fields  []Field `json:"Fields"`
	compute func(Form) fmt.Stringer
}

// Calculation is the record of one calculator run.
type Calculation struct {
	ID     uuid.UUID `json:"ID"`
	Name   string    `json:"Name"`
	Fields Form      `json:"Fields"`
	Output string    `json:"Output"`
	At     time.Time `json:"At"`
}

// Toolkit runs calculators and announces every run on its publisher.
type Toolkit struct {
	pid         uuid.UUID
	publisher   *msg.PubSub
	calculators map[string]Calculator
	order       []string
}

// New returns a Toolkit with every calculator registered. A nil publisher
// disables announcements.
func New(publisher *msg.PubSub) (*Toolkit, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	t := &Toolkit{
		pid:         pid,
		publisher:   publisher,
		calculators: make(map[string]Calculator),
	}
	for _, c := range calculators() {
		t.calculators[c.Name] = c
		t.order = append(t.order, c.Name)
	}
	return t, nil
}

// PID returns the toolkit's PID
func (t *Toolkit) PID() uuid.UUID {
	return t.pid
}

// Calculators lists the registered calculators in menu order.
func (t *Toolkit) Calculators() []Calculator {
	out := make([]Calculator, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.calculators[name])
	}
	return out
}

// Calculator looks up a calculator by name.
func (t *Toolkit) Calculator(name string) (Calculator, bool) {
	c, ok := t.calculators[name]
	return c, ok
}

// FieldIDs returns the id of every field of every calculator, sorted.
func (t *Toolkit) FieldIDs() []string {
	ids := make([]string, 0)
	for _, c := range t.calculators {
		for _, f := range c.Fields {
			ids = append(ids, f.ID)
		}
	}
	slices.Sort(ids)
	return ids
}

// Run computes the named calculator over form. Fields that belong to other
// calculators are ignored. The only error is ErrUnknownCalculator: bad
// input produces an advisory in the output instead.
func (t *Toolkit) Run(name string, form Form) (Calculation, error) {
	c, ok := t.calculators[name]
	if !ok {
		return Calculation{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}

	raw := make(Form, len(c.Fields))
	filled := make(Form, len(c.Fields))
	for _, f := range c.Fields {
		v := form[f.ID]
		raw[f.ID] = v
		if v == "" {
			v = f.Default
		}
		filled[f.ID] = v
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Calculation{}, err
	}
	calculation := Calculation{
		ID:     id,
		Name:   name,
		Fields: raw,
		Output: c.compute(filled).String(),
		At:     time.Now().UTC(),
	}
	if t.publisher != nil {
		t.publisher.Publish(msg.Calculation, calculation)
	}
	return calculation, nil
}
