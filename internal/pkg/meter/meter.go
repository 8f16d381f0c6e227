// Package meter reads live measurements from a Modbus TCP power meter and
// turns them into calculator input.
package meter

import (
	"context"
	"errors"
	"log"
	"math"
	"os"
	"time"

	"github.com/goburrow/modbus"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

// Register names a Reading is built from
const (
	Voltage     = "voltage"
	Current     = "current"
	PowerFactor = "power_factor"
	Power       = "power"
)

// DefaultRegisters is the input register map of a common single-phase DIN
// rail meter. Power is reported in watts.
var DefaultRegisters = []Register{
	{Name: Voltage, Address: 0x0000, DataType: F32, FunctionCode: InputRegisters, Endianness: BigEndian},
	{Name: Current, Address: 0x0006, DataType: F32, FunctionCode: InputRegisters, Endianness: BigEndian},
	{Name: Power, Address: 0x000C, DataType: F32, FunctionCode: InputRegisters, Endianness: BigEndian, Scale: 0.001},
	{Name: PowerFactor, Address: 0x001E, DataType: F32, FunctionCode: InputRegisters, Endianness: BigEndian},
}

// Config is the configuration format for Meter
type Config struct {
	IPAddr       string     `json:"IPAddr" yaml:"ipaddr"`
	Port         string     `json:"Port" yaml:"port"`
	SlaveID      byte       `json:"SlaveID" yaml:"slaveid"`
	Timeout      int        `json:"Timeout" yaml:"timeout"`
	PollRate     int        `json:"PollRate" yaml:"pollrate"`
	Registers    []Register `json:"Registers" yaml:"registers"`
	EnableLogger bool       `json:"EnableLogger" yaml:"enablelogger"`
}

// Reading is one set of measurements. Quantities the meter did not report
// are NaN.
type Reading struct {
	Volts       float64   `json:"Volts"`
	Amps        float64   `json:"Amps"`
	PowerFactor float64   `json:"PowerFactor"`
	KW          float64   `json:"KW"`
	At          time.Time `json:"At"`
}

// Form maps the reading onto the power and Ohm's law calculator fields.
func (r Reading) Form() toolkit.Form {
	f := toolkit.Form{}
	set := func(id string, v float64) {
		if calc.Present(v) {
			f[id] = calc.Number(v)
		}
	}
	set("powerV", r.Volts)
	set("powerI", r.Amps)
	set("powerPF", r.PowerFactor)
	set("ohmV", r.Volts)
	set("ohmI", r.Amps)
	return f
}

func readingFrom(values map[string]float64) Reading {
	get := func(name string) float64 {
		if v, ok := values[name]; ok {
			return v
		}
		return calc.Absent
	}
	return Reading{
		Volts:       get(Voltage),
		Amps:        get(Current),
		PowerFactor: math.Abs(get(PowerFactor)),
		KW:          get(Power),
		At:          time.Now().UTC(),
	}
}

// registerReader is the part of modbus.Client a Meter uses.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// readRegisters reads every register it can. Failed registers are left
// out of the result and the last error is returned.
func readRegisters(client registerReader, registers []Register) (map[string]float64, error) {
	values := make(map[string]float64)
	var err error
	for _, register := range registers {
		var resp []byte
		var readErr error
		switch register.FunctionCode {
		case HoldingRegisters:
			resp, readErr = client.ReadHoldingRegisters(register.Address, sizeOf(register.DataType))
		default:
			resp, readErr = client.ReadInputRegisters(register.Address, sizeOf(register.DataType))
		}
		if readErr != nil {
			err = readErr
			continue
		}
		v, decodeErr := decode(resp, register)
		if decodeErr != nil {
			err = decodeErr
			continue
		}
		values[register.Name] = v
	}
	return values, err
}

// Meter reads a power meter over Modbus TCP
type Meter struct {
	handler   *modbus.TCPClientHandler
	registers []Register
	pollRate  time.Duration
}

// New is a factory for the Meter struct
func New(cfg Config) (*Meter, error) {
	if cfg.IPAddr == "" {
		return nil, errors.New("meter: IPAddr is required")
	}
	if cfg.Port == "" {
		cfg.Port = "502"
	}
	if len(cfg.Registers) == 0 {
		cfg.Registers = DefaultRegisters
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 1000
	}
	if cfg.PollRate <= 0 {
		cfg.PollRate = 1000
	}

	handler := modbus.NewTCPClientHandler(cfg.IPAddr + ":" + cfg.Port)
	handler.Timeout = time.Millisecond * time.Duration(cfg.Timeout)
	handler.SlaveId = cfg.SlaveID
	if cfg.EnableLogger {
		handler.Logger = log.New(os.Stdout, "modbus: ", log.LstdFlags)
	}

	return &Meter{
		handler:   handler,
		registers: cfg.Registers,
		pollRate:  time.Millisecond * time.Duration(cfg.PollRate),
	}, nil
}

// Read connects, reads every register once and disconnects. A partial
// reading is returned along with the error of the registers that failed.
func (m *Meter) Read() (Reading, error) {
	if err := m.handler.Connect(); err != nil {
		return readingFrom(nil), err
	}
	defer m.handler.Close()

	values, err := readRegisters(modbus.NewClient(m.handler), m.registers)
	return readingFrom(values), err
}

// Poll reads the meter every poll period until ctx is done.
func (m *Meter) Poll(ctx context.Context, fn func(Reading, error)) {
	ticker := time.NewTicker(m.pollRate)
	defer ticker.Stop()
	for {
		fn(m.Read())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
