package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"yaml-fixer/internal/report"
	"yaml-fixer/internal/workspace"
)

func (a *app) fixCmd() *cobra.Command {
	var (
		write  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "fix [flags] [file|directory|glob ...]",
		Short: "Repair YAML files or stdin",
		Long: `Repair YAML documents. With no arguments (or "-") the document is read
from stdin and the repaired text written to stdout, with the report on
stderr. Directories are searched for *.yaml and *.yml files.

Without --write, files are left untouched and only the report is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			if stdinMode(args) {
				return a.fixStdin(cmd, f)
			}

			paths, err := workspace.Expand(args, a.cfg.Workspace.Patterns)
			if err != nil {
				return err
			}

			results, err := a.runner(write).FixFiles(cmd.Context(), paths)
			if err != nil {
				return err
			}

			if err := a.render(cmd.OutOrStdout(), f, results, true); err != nil {
				return err
			}

			return exitStatus(results, func(r workspace.FileResult) bool { return r.Fix.Valid })
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text|json)")

	return cmd
}

func (a *app) fixStdin(cmd *cobra.Command, f report.Format) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	res := a.fixer().Fix(string(data), a.cfg.Fixer.Options())
	result := workspace.FileResult{Path: "<stdin>", Fix: res}

	if f == report.FormatJSON {
		if err := report.JSON(cmd.OutOrStdout(), []workspace.FileResult{result}); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(cmd.OutOrStdout(), res.Text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if err := a.render(cmd.ErrOrStderr(), f, []workspace.FileResult{result}, true); err != nil {
			return err
		}
	}

	if !res.Valid {
		return errReported
	}

	return nil
}

func (a *app) render(w io.Writer, f report.Format, results []workspace.FileResult, fix bool) error {
	if f == report.FormatJSON {
		return report.JSON(w, results)
	}

	p, err := a.printer(w)
	if err != nil {
		return err
	}

	if fix {
		p.Fix(results)
	} else {
		p.Validate(results)
	}

	return nil
}

// exitStatus returns errReported when a file failed or ok rejects it.
func exitStatus(results []workspace.FileResult, ok func(workspace.FileResult) bool) error {
	for _, r := range results {
		if r.Err != nil || !ok(r) {
			return errReported
		}
	}

	return nil
}
