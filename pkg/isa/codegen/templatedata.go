package codegen

import (
	"strings"

	"github.com/Manu343726/isagen/pkg/isa"
	"github.com/Manu343726/isagen/pkg/utils"
)

// Data passed to the artifact templates
type TemplateData struct {
	// Name of the artifact being rendered
	File         string
	Namespace    string
	GuardPrefix  string
	Package      string
	Instructions []InstructionTemplateData
	Invalid      InstructionTemplateData
}

// A single enumeration member
type InstructionTemplateData struct {
	// Instruction name, used as lookup key
	Name string
	// Enumeration member name
	Symbol string
	// Opcode value as hex literal
	Hex string
}

// Returns the include guard macro of the artifact being rendered (EVM_ISA_OPCODE_NAME_MAP_H)
func (d *TemplateData) IncludeGuard() string {
	file := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(d.File))
	return d.GuardPrefix + "_" + file
}

func newTemplateData(file string, table *isa.Table, options Options) *TemplateData {
	return &TemplateData{
		File:        file,
		Namespace:   options.Namespace,
		GuardPrefix: options.GuardPrefix,
		Package:     options.Package,
		Instructions: utils.Map(table.Instructions(), func(i isa.Instruction) InstructionTemplateData {
			return InstructionTemplateData{
				Name:   i.Name,
				Symbol: i.Symbol(),
				Hex:    i.Opcode.Hex(),
			}
		}),
		Invalid: InstructionTemplateData{
			Name:   isa.InvalidName,
			Symbol: isa.InvalidSymbol,
			Hex:    table.Invalid().Hex(),
		},
	}
}
