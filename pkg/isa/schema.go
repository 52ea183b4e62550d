package isa

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Name of the instruction attribute holding the opcode value.
// Any other attribute of an instruction entry is ignored
const OpcodeAttribute = "opcode"

// Loads and validates an instruction schema file from the OS filesystem
func LoadFile(path string) (*Table, error) {
	return Load(afero.NewOsFs(), path)
}

// Loads and validates an instruction schema file from the given filesystem
func Load(fs afero.Fs, path string) (*Table, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open instruction schema: %w", err)
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	slog.Debug("loaded instruction schema", "path", path, "instructions", table.Len(), "invalid", table.Invalid().Hex())
	return table, nil
}

// Parses an instruction schema document. The document root must be a mapping
// from instruction name to instruction attributes:
//
//	add: {opcode: 0x01}
//	stop:
//	  opcode: 0
//
// Instructions are kept in the order they appear in the document
func Parse(r io.Reader) (*Table, error) {
	var document yaml.Node
	decoder := yaml.NewDecoder(r)

	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, utils.MakeError(ErrSchemaParse, "empty document")
		}

		return nil, utils.MakeError(ErrSchemaParse, "%v", err)
	}

	if len(document.Content) == 0 {
		return nil, utils.MakeError(ErrSchemaParse, "empty document")
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, utils.MakeError(ErrSchemaParse, "a schema must be a single YAML document")
	}

	root := resolveAlias(document.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, utils.MakeError(ErrSchemaParse, "line %v: expected a mapping of instruction names to instruction attributes", root.Line)
	}

	instructions := make([]Instruction, 0, len(root.Content)/2)
	lines := make([]int, 0, len(root.Content)/2)

	// Mapping node contents are laid out as key, value, key, value, ...
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolveAlias(root.Content[i+1])

		if key.Kind != yaml.ScalarNode {
			return nil, utils.MakeError(ErrSchemaParse, "line %v: instruction names must be scalars", key.Line)
		}

		opcode, err := parseOpcode(key, value)
		if err != nil {
			return nil, err
		}

		instructions = append(instructions, Instruction{Name: key.Value, Opcode: opcode})
		lines = append(lines, key.Line)
	}

	return newTable(instructions, func(i int) string {
		return fmt.Sprintf("'%v' (line %v)", instructions[i].Name, lines[i])
	})
}

func parseOpcode(name *yaml.Node, attributes *yaml.Node) (Opcode, error) {
	if attributes.Kind != yaml.MappingNode {
		return 0, utils.MakeError(ErrSchemaParse, "line %v: instruction '%v' must be a mapping with an '%v' attribute", name.Line, name.Value, OpcodeAttribute)
	}

	opcodeNode, err := findOpcode(name, attributes)
	if err != nil {
		return 0, err
	}

	if opcodeNode == nil {
		return 0, utils.MakeError(ErrSchemaParse, "line %v: instruction '%v' has no '%v' attribute", name.Line, name.Value, OpcodeAttribute)
	}

	var value int64

	if opcodeNode.Kind != yaml.ScalarNode || opcodeNode.ShortTag() != "!!int" || opcodeNode.Decode(&value) != nil || value < 0 {
		return 0, utils.MakeError(ErrSchemaParse, "line %v: opcode of instruction '%v' must be a non-negative integer, got '%v'", opcodeNode.Line, name.Value, opcodeNode.Value)
	}

	if value > MaxOpcode {
		return 0, utils.MakeError(ErrOpcodeOutOfRange, "line %v: opcode %v of instruction '%v' does not fit in %v bits", opcodeNode.Line, opcodeNode.Value, name.Value, OpcodeBits)
	}

	return Opcode(value), nil
}

// Returns the opcode node of an instruction, or nil if there's none. Keys declared
// in the entry itself win over keys brought in with merge keys (<<), and earlier
// merged mappings win over later ones
func findOpcode(name *yaml.Node, attributes *yaml.Node) (*yaml.Node, error) {
	var opcode *yaml.Node
	var merged []*yaml.Node

	for i := 0; i+1 < len(attributes.Content); i += 2 {
		key, value := attributes.Content[i], resolveAlias(attributes.Content[i+1])

		switch {
		case key.Value == OpcodeAttribute:
			if opcode != nil {
				return nil, utils.MakeError(ErrSchemaParse, "line %v: instruction '%v' declares '%v' more than once", key.Line, name.Value, OpcodeAttribute)
			}

			opcode = value
		case key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge":
			if value.Kind == yaml.SequenceNode {
				merged = append(merged, utils.Map(value.Content, resolveAlias)...)
			} else {
				merged = append(merged, value)
			}
		}
	}

	if opcode != nil {
		return opcode, nil
	}

	for _, mapping := range merged {
		if mapping.Kind != yaml.MappingNode {
			return nil, utils.MakeError(ErrSchemaParse, "line %v: instruction '%v' merges something that is not a mapping", mapping.Line, name.Value)
		}

		found, err := findOpcode(name, mapping)
		if err != nil || found != nil {
			return found, err
		}
	}

	return nil, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

// Writes the table back as a normalized schema document, one flow mapping per
// instruction, opcodes in hex. Parsing the output gives back an equivalent table
func WriteSchema(w io.Writer, table *Table) error {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, instr := range table.instructions {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: instr.Name},
			&yaml.Node{
				Kind:  yaml.MappingNode,
				Tag:   "!!map",
				Style: yaml.FlowStyle,
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: OpcodeAttribute},
					{Kind: yaml.ScalarNode, Tag: "!!int", Value: instr.Opcode.Hex()},
				},
			},
		)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(root); err != nil {
		return err
	}

	return encoder.Close()
}
