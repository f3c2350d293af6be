package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yaml-fixer/internal/workspace"
)

func (a *app) watchCmd() *cobra.Command {
	var initial bool

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Fix YAML files in place whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := a.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			runner := a.runner(true)

			if initial {
				paths, err := workspace.Expand([]string{root}, a.cfg.Workspace.Patterns)

				switch {
				case errors.Is(err, workspace.ErrNoInput):
					a.logger.Debug("no files to fix initially", zap.String("root", root))
				case err != nil:
					return err
				default:
					results, err := runner.FixFiles(ctx, paths)
					if err != nil {
						return err
					}

					p.Fix(results)
				}
			}

			debounce := time.Duration(a.cfg.Workspace.DebounceMillis) * time.Millisecond

			w, err := workspace.NewWatcher(root, a.cfg.Workspace.Patterns, debounce, runner)
			if err != nil {
				return err
			}

			return w.Run(ctx, p.FixResult)
		},
	}

	cmd.Flags().BoolVar(&initial, "initial", true, "fix existing files before watching")

	return cmd
}
