package isa

import "errors"

var (
	// The schema document is malformed: bad YAML, unexpected structure, missing or non integer opcodes
	ErrSchemaParse = errors.New("malformed instruction schema")
	// Two instructions declare the same opcode value
	ErrDuplicateOpcode = errors.New("duplicate instruction opcode")
	// Two instructions declare the same name, or names that map to the same symbol
	ErrDuplicateName = errors.New("duplicate instruction name")
	// An instruction name collides with the reserved sentinel symbol
	ErrReservedName = errors.New("reserved instruction name")
	// An opcode does not fit the one byte opcode encoding
	ErrOpcodeOutOfRange = errors.New("instruction opcode out of range")
	// All 256 opcode values are taken so there's no value left for the sentinel
	ErrOpcodeSpaceExhausted = errors.New("no free opcode value left for the invalid sentinel")
)
