package isa

import (
	"math"

	"github.com/Manu343726/isagen/pkg/utils"
)

// Numeric identifier of an instruction. Instructions are encoded with a one byte opcode
type Opcode uint8

const (
	// Largest encodable opcode
	MaxOpcode = math.MaxUint8
	// Number of hex digits used to render an opcode
	OpcodeHexDigits = 2
	// Number of bits used to encode an opcode
	OpcodeBits = 8

	// Symbol of the sentinel enumeration member returned when an instruction name is not found
	InvalidSymbol = "INVALID"
	// Name returned when an opcode has no instruction associated
	InvalidName = "invalid"
)

// Returns the opcode as a fixed width hex literal (0x1a)
func (op Opcode) Hex() string {
	return utils.FormatUintHex(uint64(op), OpcodeHexDigits)
}

// Returns the opcode as a fixed width binary string (00011010)
func (op Opcode) Binary() string {
	return utils.FormatUintBinary(uint64(op), OpcodeBits)
}
