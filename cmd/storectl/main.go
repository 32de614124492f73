// Package main implements storectl, a terminal front end for the
// counter and employee store.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apppkg "github.com/i-melnichenko/store-lab/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "storectl: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	logLevel    string
	metricsDump bool
	tracing     bool
	noColor     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Drive the counter and employee store from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug|info|warn|error), overrides APP_LOG_LEVEL")
	root.PersistentFlags().BoolVar(&flags.metricsDump, "metrics", false, "print Prometheus metrics to stderr on exit")
	root.PersistentFlags().BoolVar(&flags.tracing, "trace", false, "print store spans to stderr")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable styled output")

	root.AddCommand(
		newShellCmd(&flags),
		newApplyCmd(&flags),
		newDemoCmd(&flags),
	)
	return root
}

func newShellCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell (type help for commands)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *apppkg.App) error {
				prompt := isatty.IsTerminal(os.Stdin.Fd())
				return a.RunShell(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			})
		},
	}
}

func newApplyCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "apply <file|->",
		Short: "Dispatch a script of encoded actions and print the final state",
		Long: `Dispatch a script of encoded actions and print the final state.

JSON lines (one envelope per line):
  {"type":"[Employees List] DELETE_EMPLOYEE","id":2}
  {"type":"[Employees List] CREATE_EMPLOYEE","data":{"name":"Sara","salary":40000}}

YAML (a sequence of the same envelopes) is selected by a .yaml/.yml
extension or --format yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var in io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			if format == "" {
				format = apppkg.FormatForPath(path)
			}
			return withApp(cmd, flags, func(ctx context.Context, a *apppkg.App) error {
				return a.ApplyScript(ctx, in, format, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "script format (jsonl|yaml), guessed from the file name by default")
	return cmd
}

func newDemoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Contrast a counter kept outside the store with one bound to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *apppkg.App) error {
				return a.RunDemo(ctx, cmd.OutOrStdout())
			})
		},
	}
}

func withApp(cmd *cobra.Command, flags *rootFlags, fn func(context.Context, *apppkg.App) error) error {
	cfg, err := apppkg.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	cfg.MetricsDump = cfg.MetricsDump || flags.metricsDump
	cfg.TracingEnabled = cfg.TracingEnabled || flags.tracing
	if flags.noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		cfg.Color = false
	}

	slog.SetDefault(newLogger(cfg.LogLevel))
	logger := slog.Default()

	ctx := cmd.Context()
	a, err := apppkg.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)
	if err := a.Close(context.Background()); err != nil {
		logger.Warn("close failed", "error", err)
	}
	return runErr
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
