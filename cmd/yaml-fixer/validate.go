package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"yaml-fixer/internal/report"
	"yaml-fixer/internal/workspace"
)

func (a *app) validateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [flags] [file|directory|glob ...]",
		Short: "Report problems without modifying anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			var results []workspace.FileResult

			if stdinMode(args) {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}

				res := a.fixer().Validate(string(data), a.cfg.Fixer.Options())
				results = []workspace.FileResult{{Path: "<stdin>", Validation: res}}
			} else {
				paths, err := workspace.Expand(args, a.cfg.Workspace.Patterns)
				if err != nil {
					return err
				}

				results, err = a.runner(false).ValidateFiles(cmd.Context(), paths)
				if err != nil {
					return err
				}
			}

			if err := a.render(cmd.OutOrStdout(), f, results, false); err != nil {
				return err
			}

			return exitStatus(results, func(r workspace.FileResult) bool { return r.Validation.Clean })
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text|json)")

	return cmd
}
