package cmd

import (
	"fmt"

	"github.com/Manu343726/isagen/pkg/isa"
	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <schema> <name>...",
		Short: "Resolve instruction names to opcodes",
		Long: `Resolves each name the same way the generated lookup does: declared names
print their opcode, anything else prints INVALID. Names are case sensitive.`,
		Example: `  isagen lookup isa.yaml add stop nop`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return utils.MakeError(ErrUsage, "expected a schema and at least one instruction name")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.load(args[0])
			if err != nil {
				return err
			}

			for _, name := range args[1:] {
				fmt.Fprintf(cmd.OutOrStdout(), "%v = %v\n", name, describeResolved(table, name))
			}

			return nil
		},
	}
}

func describeResolved(table *isa.Table, name string) string {
	instr, found := table.Lookup(name)
	if !found {
		return colorInvalid.Sprint(isa.InvalidSymbol)
	}

	return colorOpcode.Sprint(instr.Opcode.Hex())
}
