package cmd

import (
	"fmt"
	"strings"

	"github.com/Manu343726/isagen/pkg/isa/codegen"
	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets [target]",
		Short: "List the supported output languages",
		Long: `Lists every supported generation target along with the files it generates.

Supported targets:
` + strings.Join(utils.Map(codegen.Targets(), func(target string) string { return "  " + target }), "\n"),
		ValidArgs: codegen.Targets(),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs)(cmd, args); err != nil {
				return utils.MakeError(ErrUsage, "%v", err)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := codegen.Targets()
			if len(args) == 1 {
				targets = args
			}

			defaultTarget := codegen.DefaultOptions().Target

			for _, name := range targets {
				target := codegen.Target(name)
				label := name

				if target == defaultTarget {
					label += " (default)"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%v: %v\n", label, strings.Join(target.Artifacts(), ", "))
			}

			return nil
		},
	}
}
