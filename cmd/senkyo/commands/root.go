// Package commands implements CLI command handlers for senkyo.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
	"github.com/Sumatoshi-tech/senkyo/pkg/version"
)

// exitCodeValidationFailure is the exit code when validate finds problems.
const exitCodeValidationFailure = 2

// ErrValidationFailed is returned by validate when any file has problems.
var ErrValidationFailed = errors.New("validation failed")

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if errors.Is(err, ErrValidationFailed) {
		return exitCodeValidationFailure
	}

	return 1
}

// app is the state shared by every subcommand: global flags plus what the
// root pre-run builds from them.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
	formatName string

	cfg       *config.Config
	format    terminal.Format
	providers observability.Providers
	red       *observability.REDMetrics
}

// NewRootCommand builds the senkyo command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "senkyo",
		Short: "Japanese election results: aggregation, tables and charts",
		Long: `senkyo aggregates pre-computed election result files (CSV, JSON, XLSX)
into party totals, district winners, year-over-year swings, prefecture
tile maps and House of Representatives seat breakdowns.

Results print as tables, JSON or YAML, render as HTML chart pages, or
are served over HTTP and MCP.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: senkyo.yaml in ., ./config or ~/.config/senkyo)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress output")
	flags.StringVarP(&a.formatName, "format", "f", string(terminal.FormatTable), "output format: table, json, yaml")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.summaryCommand(),
		a.districtsCommand(),
		a.heatmapCommand(),
		a.compareCommand(),
		a.tilemapCommand(),
		a.nationalCommand(),
		a.precinctsCommand(),
		a.areasCommand(),
		a.validateCommand(),
		a.importXLSXCommand(),
		a.reportCommand(),
		a.serveCommand(),
		a.mcpCommand(),
		versionCommand(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	a.format, err = terminal.ParseFormat(a.formatName)
	if err != nil {
		return err
	}

	if a.noColor {
		terminal.SetColor(false)
	}

	obsCfg := observability.FromConfig(cfg, modeOf(cmd), version.Version)

	switch {
	case a.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case a.quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	if obsCfg.Mode == observability.ModeMCP {
		obsCfg.LogJSON = true
	}

	a.providers, err = observability.Init(obsCfg)
	if err != nil {
		return err
	}

	slog.SetDefault(a.providers.Logger)

	a.red, err = observability.NewREDMetrics(a.providers.Meter)

	return err
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.providers.Shutdown == nil {
		return nil
	}

	if err := a.providers.Shutdown(context.WithoutCancel(cmd.Context())); err != nil {
		a.providers.Logger.Warn("observability shutdown failed", "error", err)
	}

	return nil
}

func modeOf(cmd *cobra.Command) observability.AppMode {
	switch cmd.Name() {
	case "mcp":
		return observability.ModeMCP
	case "serve":
		return observability.ModeServe
	default:
		return observability.ModeCLI
	}
}

// instrument wraps a command body in a span and RED metrics under
// "cli.<name>"; records logged with the command's context carry the same op.
func (a *app) instrument(name string, fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		op := "cli." + name
		ctx = observability.WithOp(ctx, op)

		ctx, span := a.providers.Tracer.Start(ctx, op,
			trace.WithAttributes(attribute.Int("cli.args", len(args))))
		defer span.End()

		done := a.red.TrackInflight(ctx, op)
		defer done()

		start := time.Now()
		err := fn(ctx, cmd, args)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		a.red.RecordRequest(ctx, op, observability.StatusOf(err), time.Since(start))

		return err
	}
}

func (a *app) logger() *slog.Logger {
	return a.providers.Logger
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
