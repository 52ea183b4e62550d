// Package report renders instruction tables for humans
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Manu343726/isagen/pkg/isa"
	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
)

type Format string

const (
	Format_Table    Format = "table"
	Format_Markdown Format = "markdown"
	Format_CSV      Format = "csv"
	Format_YAML     Format = "yaml"
	Format_Spew     Format = "spew"
)

var ErrUnknownFormat = errors.New("unknown report format")

var formats = map[Format]func(io.Writer, *isa.Table) error{
	Format_Table:    renderTable(table.Writer.Render),
	Format_Markdown: renderTable(table.Writer.RenderMarkdown),
	Format_CSV:      renderTable(table.Writer.RenderCSV),
	Format_YAML:     isa.WriteSchema,
	Format_Spew:     renderSpew,
}

// Returns the names of all supported formats
func Formats() []string {
	return utils.Map(utils.SortedKeys(formats), func(f Format) string { return string(f) })
}

// Parses a format name (case insensitive)
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(name))

	if _, supported := formats[format]; !supported {
		return "", utils.MakeError(ErrUnknownFormat, "'%v' (supported formats: %v)", name, strings.Join(Formats(), ", "))
	}

	return format, nil
}

// Writes the table in the given format. Instructions are listed in declaration order, followed by the INVALID sentinel
func Render(w io.Writer, t *isa.Table, format Format) error {
	render, supported := formats[format]
	if !supported {
		return utils.MakeError(ErrUnknownFormat, "'%v'", format)
	}

	return render(w, t)
}

func renderTable(render func(table.Writer) string) func(io.Writer, *isa.Table) error {
	return func(w io.Writer, t *isa.Table) error {
		_, err := fmt.Fprintln(w, render(NewTableWriter(t)))
		return err
	}
}

// Returns a go-pretty table with one row per instruction plus the sentinel row
func NewTableWriter(t *isa.Table) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Symbol", "Opcode", "Binary"})

	for _, instr := range t.Instructions() {
		tw.AppendRow(table.Row{instr.Name, instr.Symbol(), instr.Opcode.Hex(), instr.Opcode.Binary()})
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{isa.InvalidName, isa.InvalidSymbol, t.Invalid().Hex(), t.Invalid().Binary()})

	return tw
}

func renderSpew(w io.Writer, t *isa.Table) error {
	config := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		DisableMethods:          true,
		SortKeys:                true,
	}

	config.Fdump(w, t)
	return nil
}
