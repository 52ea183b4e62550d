package isa

import (
	"fmt"

	"github.com/Manu343726/isagen/pkg/utils"
)

// Validated, immutable instruction table. Instructions are kept in declaration order.
// Tables are created with NewTable() or loaded from a schema file and never change after that
type Table struct {
	instructions []Instruction
	byName       map[string]int
	byOpcode     map[Opcode]int
	invalid      Opcode
}

// Builds a table from a list of instructions in declaration order, checking all table invariants:
//   - Names are valid identifiers, pairwise distinct, and map to pairwise distinct symbols
//   - No name maps to the reserved INVALID symbol
//   - Opcodes are pairwise distinct
//   - There's a free opcode value left for the INVALID sentinel
func NewTable(instructions []Instruction) (*Table, error) {
	return newTable(instructions, func(i int) string {
		return fmt.Sprintf("'%v'", instructions[i].Name)
	})
}

// describe returns how the i-th instruction is referenced in error messages
func newTable(instructions []Instruction, describe func(i int) string) (*Table, error) {
	t := &Table{
		instructions: make([]Instruction, len(instructions)),
		byName:       make(map[string]int, len(instructions)),
		byOpcode:     make(map[Opcode]int, len(instructions)),
	}

	copy(t.instructions, instructions)
	bySymbol := make(map[string]int, len(instructions))

	for i, instr := range t.instructions {
		if !IsValidName(instr.Name) {
			return nil, utils.MakeError(ErrSchemaParse, "instruction name %v is not a valid identifier", describe(i))
		}

		if instr.Symbol() == InvalidSymbol {
			return nil, utils.MakeError(ErrReservedName, "instruction %v maps to the reserved symbol %v", describe(i), InvalidSymbol)
		}

		if other, found := t.byName[instr.Name]; found {
			return nil, utils.MakeError(ErrDuplicateName, "instruction %v already declared as %v", describe(i), describe(other))
		}

		if other, found := bySymbol[instr.Symbol()]; found {
			return nil, utils.MakeError(ErrDuplicateName, "instructions %v and %v both map to symbol %v", describe(other), describe(i), instr.Symbol())
		}

		if other, found := t.byOpcode[instr.Opcode]; found {
			return nil, utils.MakeError(ErrDuplicateOpcode, "instruction %v uses opcode %v, already taken by %v", describe(i), instr.Opcode.Hex(), describe(other))
		}

		t.byName[instr.Name] = i
		t.byOpcode[instr.Opcode] = i
		bySymbol[instr.Symbol()] = i
	}

	invalid, err := t.findInvalidOpcode()
	if err != nil {
		return nil, err
	}

	t.invalid = invalid
	return t, nil
}

// The sentinel goes right after the highest opcode. If that doesn't fit a byte,
// the lowest unused value is taken instead
func (t *Table) findInvalidOpcode() (Opcode, error) {
	if len(t.instructions) == 0 {
		return 0, nil
	}

	highest := utils.Max(utils.Map(t.instructions, func(i Instruction) int { return int(i.Opcode) }))

	if highest < MaxOpcode {
		return Opcode(highest + 1), nil
	}

	for value := 0; value <= MaxOpcode; value++ {
		if _, used := t.byOpcode[Opcode(value)]; !used {
			return Opcode(value), nil
		}
	}

	return 0, utils.MakeError(ErrOpcodeSpaceExhausted, "%v instructions declared", len(t.instructions))
}

// Returns a copy of the instructions in declaration order
func (t *Table) Instructions() []Instruction {
	result := make([]Instruction, len(t.instructions))
	copy(result, t.instructions)
	return result
}

// Number of declared instructions, not counting the sentinel
func (t *Table) Len() int {
	return len(t.instructions)
}

// Returns the opcode value reserved for the INVALID sentinel
func (t *Table) Invalid() Opcode {
	return t.invalid
}

// Returns the instruction with the given name
func (t *Table) Lookup(name string) (Instruction, bool) {
	if i, found := t.byName[name]; found {
		return t.instructions[i], true
	}

	return Instruction{}, false
}

// Returns the opcode of the instruction with the given name, or the INVALID sentinel if there's no such instruction
func (t *Table) Resolve(name string) Opcode {
	if instr, found := t.Lookup(name); found {
		return instr.Opcode
	}

	return t.invalid
}

// Returns the name of the instruction with the given opcode, or "invalid" if no instruction uses it
func (t *Table) Name(op Opcode) string {
	if i, found := t.byOpcode[op]; found {
		return t.instructions[i].Name
	}

	return InvalidName
}
