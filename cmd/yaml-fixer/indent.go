package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yaml-fixer/internal/fixer"
	"yaml-fixer/internal/workspace"
	"yaml-fixer/internal/yamlio"
)

func (a *app) indentCmd() *cobra.Command {
	var (
		detect bool
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "indent [flags] [file ...]",
		Short: "Normalize indentation only",
		Long: `Snap every line to a multiple of the indentation unit (--indent) without
running the other repairs. With --detect, print the detected unit instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			unit := a.cfg.Fixer.IndentUnit

			if stdinMode(args) {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}

				if detect {
					_, err = fmt.Fprintln(out, fixer.DetectIndentStyle(string(data)))
				} else {
					_, err = io.WriteString(out, fixer.NormalizeIndentation(string(data), unit))
				}

				return err
			}

			paths, err := workspace.Expand(args, a.cfg.Workspace.Patterns)
			if err != nil {
				return err
			}

			if !detect && !write && len(paths) > 1 {
				return errors.New("--write is required with more than one file")
			}

			for _, path := range paths {
				text, err := yamlio.ReadFile(path)
				if err != nil {
					return err
				}

				switch {
				case detect:
					fmt.Fprintf(out, "%s: %d\n", path, fixer.DetectIndentStyle(text))
				case write:
					normalized := fixer.NormalizeIndentation(text, unit)
					if normalized == text {
						continue
					}

					if err := yamlio.WriteFile(path, normalized); err != nil {
						return err
					}

					a.logger.Info("indentation normalized", zap.String("path", path))
				default:
					if _, err := io.WriteString(out, fixer.NormalizeIndentation(text, unit)); err != nil {
						return err
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&detect, "detect", false, "print the detected indentation unit")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place")

	return cmd
}
