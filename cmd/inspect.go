package cmd

import (
	"fmt"

	"github.com/Manu343726/isagen/pkg/isa"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <schema>",
		Short: "Browse the instruction table interactively",
		Long: `Opens a terminal browser over the validated instruction table.
Use the arrow keys to move around, q or Esc to quit.`,
		Args: exactlyOneSchema,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.load(args[0])
			if err != nil {
				return err
			}

			return newInspector(tview.NewApplication(), table, args[0]).Run()
		},
	}
}

var inspectorHeaders = []string{"Name", "Symbol", "Opcode", "Binary"}

// Terminal UI listing every instruction of a table followed by the INVALID opcode
type inspector struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
	rows   []isa.Instruction
}

func newInspector(app *tview.Application, table *isa.Table, title string) *inspector {
	i := &inspector{
		app:    app,
		table:  tview.NewTable(),
		status: tview.NewTextView(),
		rows:   append(table.Instructions(), isa.Instruction{Name: isa.InvalidName, Opcode: table.Invalid()}),
	}

	for column, header := range inspectorHeaders {
		i.table.SetCell(0, column, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for row, instr := range i.rows {
		textColor := tcell.ColorWhite
		if row == len(i.rows)-1 {
			textColor = tcell.ColorRed
		}

		for column, text := range []string{instr.Name, instr.Symbol(), instr.Opcode.Hex(), instr.Opcode.Binary()} {
			i.table.SetCell(row+1, column, tview.NewTableCell(text).
				SetTextColor(textColor).
				SetExpansion(1))
		}
	}

	i.table.SetFixed(1, 0).SetSelectable(true, false)
	i.table.SetBorder(true)
	i.table.SetTitle(fmt.Sprintf(" %v: %v instructions ", title, table.Len()))
	i.table.SetSelectionChangedFunc(func(row, column int) {
		i.status.SetText(i.describe(row))
	})
	i.table.SetInputCapture(i.handleKey)
	i.table.Select(1, 0)

	return i
}

// Status line text for a table row
func (i *inspector) describe(row int) string {
	if row < 1 || row > len(i.rows) {
		return ""
	}

	instr := i.rows[row-1]

	if row == len(i.rows) {
		return fmt.Sprintf("INVALID = %v (%v): returned when resolving undeclared names. q/Esc: quit", instr.Opcode.Hex(), instr.Opcode.Binary())
	}

	return fmt.Sprintf("%v = %v (%v), declared %v of %v. q/Esc: quit", instr.Symbol(), instr.Opcode.Hex(), instr.Opcode.Binary(), row, len(i.rows)-1)
}

func (i *inspector) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		i.app.Stop()
		return nil
	}

	return event
}

func (i *inspector) Run() error {
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(i.table, 0, 1, true).
		AddItem(i.status, 1, 0, false)

	return i.app.SetRoot(layout, true).Run()
}
