package isa

import (
	"fmt"
	"regexp"
	"strings"
)

// Instruction names are embedded as-is in generated source code, so they must be identifiers starting with a letter
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// An instruction as declared in the schema
type Instruction struct {
	Name   string
	Opcode Opcode
}

// Returns the name of the generated enumeration member for the instruction
func (i Instruction) Symbol() string {
	return SymbolOf(i.Name)
}

func (i Instruction) String() string {
	return fmt.Sprintf("%v (opcode: %v)", i.Name, i.Opcode.Hex())
}

// Returns the enumeration member name for an instruction name
func SymbolOf(name string) string {
	return strings.ToUpper(name)
}

// Checks whether a string can be used as an instruction name
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}
