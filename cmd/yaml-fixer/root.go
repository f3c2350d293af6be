package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"yaml-fixer/internal/config"
	"yaml-fixer/internal/fixer"
	"yaml-fixer/internal/report"
	"yaml-fixer/internal/workspace"
)

// errReported signals a failing exit status whose cause was already
// printed.
var errReported = errors.New("problems found")

// app holds state shared by the subcommands.
type app struct {
	cfgFile   string
	verbose   bool
	colorMode string
	timeout   time.Duration
	cancel    context.CancelFunc

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "yaml-fixer",
		Short: "Repair malformed Kubernetes YAML with confidence scoring",
		Long: `yaml-fixer detects and repairs common mistakes in Kubernetes manifests:
missing colons, misspelled fields, broken indentation, duplicate keys,
mis-typed values and fields placed at the wrong level.

Each repair carries a confidence score; only repairs at or above the
threshold are applied, the rest are reported.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.cancel != nil {
				a.cancel()
			}

			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.colorMode, "color", "auto", "colorize output (auto|on|off)")
	pf.DurationVar(&a.timeout, "timeout", 0, "abort multi-file runs after this long (0 disables)")
	pf.Bool("aggressive", false, "lower the confidence threshold and relocate misplaced fields")
	pf.Float64("threshold", fixer.DefaultOptions().ConfidenceThreshold, "minimum confidence for a fix to be applied")
	pf.Int("indent", fixer.DefaultIndentUnit, "indentation unit in spaces")
	pf.Int("max-iterations", fixer.DefaultMaxIterations, "maximum detect-apply rounds per document")
	pf.Int("jobs", 0, "files processed in parallel (default: number of CPUs)")

	root.AddCommand(
		a.fixCmd(),
		a.validateCmd(),
		a.indentCmd(),
		a.serveCmd(),
		a.watchCmd(),
	)

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Read(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("aggressive") {
		cfg.Fixer.Aggressive, _ = flags.GetBool("aggressive")
	}

	if flags.Changed("threshold") {
		cfg.Fixer.ConfidenceThreshold, _ = flags.GetFloat64("threshold")
	}

	if flags.Changed("indent") {
		cfg.Fixer.IndentUnit, _ = flags.GetInt("indent")
	}

	if flags.Changed("max-iterations") {
		cfg.Fixer.MaxIterations, _ = flags.GetInt("max-iterations")
	}

	if flags.Changed("jobs") {
		cfg.Workspace.Jobs, _ = flags.GetInt("jobs")
	}

	if flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.Build(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger

	if a.timeout > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
		cmd.SetContext(ctx)
		a.cancel = cancel
	}

	return nil
}

func (a *app) fixer() *fixer.Fixer {
	return fixer.New(fixer.WithLogger(a.logger))
}

func (a *app) runner(write bool) workspace.Runner {
	return workspace.Runner{
		Fixer:   a.fixer(),
		Options: a.cfg.Fixer.Options(),
		Jobs:    a.cfg.Workspace.Jobs,
		Write:   write,
		Log:     a.logger,
	}
}

func (a *app) printer(w io.Writer) (*report.Printer, error) {
	switch a.colorMode {
	case "on":
		return report.NewPrinter(w, true), nil
	case "off":
		return report.NewPrinter(w, false), nil
	case "auto":
		f, ok := w.(*os.File)
		return report.NewPrinter(w, ok && !color.NoColor && term.IsTerminal(int(f.Fd()))), nil
	default:
		return nil, fmt.Errorf("invalid --color %q (want auto, on or off)", a.colorMode)
	}
}

// stdinMode reports whether the arguments ask to read from stdin.
func stdinMode(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}
