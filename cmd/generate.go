package cmd

import (
	"log/slog"

	"github.com/Manu343726/isagen/pkg/isa/codegen"
	"github.com/spf13/cobra"
)

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	options, err := a.options()
	if err != nil {
		return err
	}

	table, err := a.load(args[0])
	if err != nil {
		return err
	}

	generator, err := codegen.NewGenerator(options)
	if err != nil {
		return err
	}

	artifacts, err := generator.Emit(table)
	if err != nil {
		return err
	}

	var writer codegen.Writer

	if a.config.GetBool(keyStdout) {
		writer = &codegen.StreamWriter{Out: cmd.OutOrStdout(), Highlight: true}
	} else {
		writer = &codegen.DirWriter{Fs: a.fs, Dir: a.config.GetString(keyOutput)}
	}

	if err := codegen.WriteAll(writer, artifacts); err != nil {
		return err
	}

	slog.Debug("generation finished", "schema", args[0], "target", options.Target, "artifacts", len(artifacts))
	return nil
}
