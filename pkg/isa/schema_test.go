package isa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, schema string) (*Table, error) {
	t.Helper()
	return Parse(strings.NewReader(schema))
}

func TestParse_Example(t *testing.T) {
	table, err := parseString(t, `
add: {opcode: 0x01}
stop: {opcode: 0x00}
`)
	require.NoError(t, err)

	assert.Equal(t, []Instruction{
		{Name: "add", Opcode: 0x01},
		{Name: "stop", Opcode: 0x00},
	}, table.Instructions())
	assert.Equal(t, Opcode(0x01), table.Resolve("add"))
	assert.Equal(t, table.Invalid(), table.Resolve("nop"))
	assert.Equal(t, Opcode(0x02), table.Invalid())
}

func TestParse_BlockStyleAndExtraAttributes(t *testing.T) {
	table, err := parseString(t, `
exit:
  opcode: 0
  interpret: HandleExit
movi:
  description: load immediate
  opcode: 0xb
  operands: [rd, imm]
`)
	require.NoError(t, err)

	assert.Equal(t, []Instruction{
		{Name: "exit", Opcode: 0x00},
		{Name: "movi", Opcode: 0x0b},
	}, table.Instructions())
}

func TestParse_IntegerNotations(t *testing.T) {
	table, err := parseString(t, `
dec: {opcode: 10}
hex: {opcode: 0x0B}
oct: {opcode: 0o14}
bin: {opcode: 0b1101}
`)
	require.NoError(t, err)

	assert.Equal(t, []Opcode{10, 11, 12, 13}, opcodesOf(table))
}

func TestParse_Aliases(t *testing.T) {
	table, err := parseString(t, `
add: &binary {opcode: 1, kind: binary}
sub: {<<: *binary, opcode: 2}
`)
	require.NoError(t, err)
	assert.Equal(t, []Opcode{1, 2}, opcodesOf(table))

	_, err = parseString(t, `
add: &binary {opcode: 1}
sub: *binary
`)
	assert.ErrorIs(t, err, ErrDuplicateOpcode)
}

func TestParse_MergeKeys(t *testing.T) {
	table, err := parseString(t, `
base: &base {opcode: 1}
add: {<<: {opcode: 2}}
sub: {<<: [{kind: binary}, {opcode: 3}, {opcode: 9}]}
mul: {<<: *base, opcode: 4}
div:
  <<: {<<: {opcode: 5}}
`)
	require.NoError(t, err)

	assert.Equal(t, []Opcode{1, 2, 3, 4, 5}, opcodesOf(table))
}

func TestParse_MultipleDocuments(t *testing.T) {
	_, err := parseString(t, "add: {opcode: 1}\n---\nsub: {opcode: 1}\n")

	assert.ErrorIs(t, err, ErrSchemaParse)
	assert.NotErrorIs(t, err, ErrDuplicateOpcode)
	assert.ErrorContains(t, err, "single YAML document")
}

func TestParse_DuplicateOpcode(t *testing.T) {
	_, err := parseString(t, `
add: {opcode: 1}
sub: {opcode: 1}
`)

	assert.ErrorIs(t, err, ErrDuplicateOpcode)
	assert.ErrorContains(t, err, "'sub' (line 3)")
	assert.ErrorContains(t, err, "'add' (line 2)")
}

func TestParse_DuplicateName(t *testing.T) {
	_, err := parseString(t, `
add: {opcode: 1}
sub: {opcode: 2}
add: {opcode: 3}
`)

	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.ErrorContains(t, err, "'add' (line 4)")
}

func TestParse_MalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":                 ``,
		"only comments":         "# nothing here\n",
		"not yaml":              "add: {opcode: 1\n",
		"root is a list":        "- add\n- sub\n",
		"root is a scalar":      "add\n",
		"null entry":            "nop:\n",
		"scalar entry":          "add: 1\n",
		"missing opcode":        "add: {interpret: HandleAdd}\n",
		"string opcode":         "add: {opcode: \"1\"}\n",
		"word opcode":           "add: {opcode: one}\n",
		"float opcode":          "add: {opcode: 1.5}\n",
		"null opcode":           "add: {opcode: ~}\n",
		"negative opcode":       "add: {opcode: -1}\n",
		"list opcode":           "add: {opcode: [1]}\n",
		"repeated opcode":       "add:\n  opcode: 1\n  opcode: 2\n",
		"non scalar key":        "? [a, b]\n: {opcode: 1}\n",
		"invalid identifier":    "mov.w: {opcode: 1}\n",
		"huge opcode overflows": "add: {opcode: 18446744073709551616}\n",
		"multiple documents":    "add: {opcode: 1}\n---\nsub: {opcode: 1}\n",
		"merge of a scalar":     "add: {<<: 1}\n",
	}

	for name, schema := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseString(t, schema)
			assert.ErrorIs(t, err, ErrSchemaParse)
		})
	}
}

func TestParse_OpcodeOutOfRange(t *testing.T) {
	_, err := parseString(t, "add: {opcode: 256}\n")
	assert.ErrorIs(t, err, ErrOpcodeOutOfRange)

	table, err := parseString(t, "add: {opcode: 255}\n")
	require.NoError(t, err)
	assert.Equal(t, Opcode(0xff), table.Resolve("add"))
}

func TestParse_ReservedName(t *testing.T) {
	_, err := parseString(t, "invalid: {opcode: 1}\n")
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestParse_EmptyMapping(t *testing.T) {
	table, err := parseString(t, "{}\n")
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
}

func TestLoad_FromFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "isa/isa.yaml", []byte("add: {opcode: 1}\n"), 0644))

	table, err := Load(fs, "isa/isa.yaml")
	require.NoError(t, err)
	assert.Equal(t, Opcode(1), table.Resolve("add"))
}

func TestLoad_ErrorsMentionPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "isa.yaml", []byte("add: {opcode: 1}\nsub: {opcode: 1}\n"), 0644))

	_, err := Load(fs, "isa.yaml")
	assert.ErrorIs(t, err, ErrDuplicateOpcode)
	assert.ErrorContains(t, err, "isa.yaml")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "missing.yaml")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSchemaParse)
}

func TestWriteSchema_RoundTrip(t *testing.T) {
	table, err := NewTable([]Instruction{
		{Name: "stop", Opcode: 0x00},
		{Name: "add", Opcode: 0x01},
		{Name: "print", Opcode: 0x20},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, table))

	assert.Equal(t, "stop: {opcode: 0x00}\nadd: {opcode: 0x01}\nprint: {opcode: 0x20}\n", buf.String())

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Instructions(), parsed.Instructions())
	assert.Equal(t, table.Invalid(), parsed.Invalid())
}

func opcodesOf(table *Table) []Opcode {
	opcodes := []Opcode{}
	for _, instr := range table.Instructions() {
		opcodes = append(opcodes, instr.Opcode)
	}
	return opcodes
}
