package meter

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DataType defines the type of Modbus register for decoding
type DataType string

// Constants of DataType
const (
	U16 DataType = "u16"
	U32 DataType = "u32"
	I16 DataType = "i16"
	I32 DataType = "i32"
	F32 DataType = "f32"
	F64 DataType = "f64"
)

// Endian byte order of a Modbus register
type Endian string

// Constants of Endian
const (
	LittleEndian Endian = "little"
	BigEndian    Endian = "big"
)

// Function codes a register can be read with
const (
	HoldingRegisters = 3
	InputRegisters   = 4
)

// Register contains the data required to read one meter quantity
type Register struct {
	Name         string   `json:"Name" yaml:"name"`
	Address      uint16   `json:"Address" yaml:"address"`
	DataType     DataType `json:"DataType" yaml:"datatype"`
	FunctionCode int      `json:"FunctionCode" yaml:"functioncode"`
	Endianness   Endian   `json:"Endianness" yaml:"endianness"`
	Scale        float64  `json:"Scale" yaml:"scale"`
}

// decode converts register bytes into a float64, applying the scale
func decode(bytes []byte, register Register) (float64, error) {
	size := 2 * int(sizeOf(register.DataType))
	if size == 0 {
		return 0, fmt.Errorf("register %s: unknown data type %q", register.Name, register.DataType)
	}
	if len(bytes) < size {
		return 0, fmt.Errorf("register %s: short response, %d of %d bytes", register.Name, len(bytes), size)
	}

	var n float64
	endian := byteOrder(register.Endianness)
	switch register.DataType {
	case U16:
		n = float64(endian.Uint16(bytes))
	case I16:
		n = float64(int16(endian.Uint16(bytes)))
	case U32:
		n = float64(endian.Uint32(bytes))
	case I32:
		n = float64(int32(endian.Uint32(bytes)))
	case F32:
		n = float64(math.Float32frombits(endian.Uint32(bytes)))
	case F64:
		n = math.Float64frombits(endian.Uint64(bytes))
	}
	if register.Scale != 0 {
		n *= register.Scale
	}
	return n, nil
}

// byteOrder returns the binary.ByteOrder of the register
func byteOrder(e Endian) binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// sizeOf returns the number of u16 registers for the datatype
func sizeOf(t DataType) uint16 {
	switch t {
	case U16, I16:
		return 1
	case U32, I32, F32:
		return 2
	case F64:
		return 4
	}
	return 0
}
