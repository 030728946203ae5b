package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

func (a *app) areasCommand() *cobra.Command {
	var q dashboard.AreaQuery

	cmd := &cobra.Command{
		Use:   "areas [master.json]",
		Short: "Precinct turnout by local area with the change since the previous election",
		Long: `Join a constituency's precinct tallies with the Ota precinct table.

Each precinct shows its share of the votes cast across the ward and, when an
earlier election is on record, the change in votes, turnout and share.
Local areas are rolled up in display order.

Examples:
  senkyo areas data/ota-26.json
  senkyo areas --year 2026 --prev 2024 --area 蒲田`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = a.instrument("areas", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		path := a.fileArg(args, a.cfg.Data.Master)
		if path == "" {
			return fmt.Errorf("%w: pass a constituency master file or set data.master", ErrNoFile)
		}

		m, err := ingest.LoadMaster(ctx, path)
		if err != nil {
			return err
		}

		view, err := dashboard.Areas(m, q)
		if err != nil {
			return err
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, view, func() string {
			return terminal.AreaTable(view)
		})
	})

	cmd.Flags().IntVar(&q.Year, "year", 0, "election year (default: latest on record)")
	cmd.Flags().IntVar(&q.Prev, "prev", 0, "year compared against (default: the one before --year)")
	cmd.Flags().StringVar(&q.Area, "area", "", "local area, e.g. 蒲田")

	return cmd
}
