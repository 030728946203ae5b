package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/mcp"
	"github.com/Sumatoshi-tech/senkyo/pkg/report"
	"github.com/Sumatoshi-tech/senkyo/pkg/server"
)

func (a *app) serveCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve [csv...]",
		Short: "Serve the dataset over HTTP",
		Long: `Serve the configured data directory as a JSON API and rendered report
pages, with /healthz, /readyz and Prometheus /metrics.

Filter state set through PUT /api/filter is shared by every client.`,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ds, err := a.load(ctx, args)
		if err != nil {
			return err
		}

		srv, err := server.New(server.Options{
			Dataset: ds,
			Logger:  a.logger(),
			Tracer:  a.providers.Tracer,
			Theme:   report.ParseTheme(a.cfg.Report.Theme),
			Title:   a.cfg.Report.Title,
		})
		if err != nil {
			return err
		}

		cfg := a.cfg.Server
		if cmd.Flags().Changed("host") {
			cfg.Host = host
		}

		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}

		return srv.ListenAndServe(ctx, cfg)
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default: server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default: server.port)")

	return cmd
}

func (a *app) mcpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp [csv...]",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server loads the configured dataset once and exposes it as tools:
  - senkyo_summary, senkyo_districts, senkyo_heatmap: CSV row aggregation
  - senkyo_compare: year-over-year party comparison
  - senkyo_tilemap: prefecture tile map colours
  - senkyo_national: House of Representatives seats and lists
  - senkyo_precincts: Ota ward polling precincts
  - senkyo_validate: check a result file`,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		ds, err := a.load(ctx, args)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(mcp.ServerDeps{
			Dataset: ds,
			Logger:  a.logger(),
			Metrics: a.red,
			Tracer:  a.providers.Tracer,
		})

		return srv.Run(ctx)
	}

	return cmd
}
