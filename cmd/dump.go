package cmd

import (
	"fmt"
	"strings"

	"github.com/Manu343726/isagen/pkg/isa/report"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <schema>",
		Short: "Print the validated instruction table",
		Long: `Loads and validates an instruction schema and prints the resulting table,
including the INVALID opcode, in the requested format.

The yaml format prints the schema back in normalized form, with opcodes in hex.`,
		Example: `  isagen dump isa.yaml
  isagen dump isa.yaml -f markdown > opcodes.md`,
		Args: exactlyOneSchema,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}

			table, err := a.load(args[0])
			if err != nil {
				return err
			}

			return report.Render(cmd.OutOrStdout(), table, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.Format_Table), fmt.Sprintf("Output format (%v)", strings.Join(report.Formats(), ", ")))
	return cmd
}
