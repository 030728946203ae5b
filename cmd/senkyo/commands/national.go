package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

func (a *app) nationalCommand() *cobra.Command {
	var (
		q    dashboard.NationalQuery
		sort string
	)

	cmd := &cobra.Command{
		Use:   "national [national.json]",
		Short: "House of Representatives seats, block lists and party performance",
		Long: `Show a House of Representatives election.

Without filters: district seats by party and the proportional seat matrix.
--block with --party: that party's proportional list in the block.
--party alone: the party's district performance per prefecture.

Sort keys for lists: rank, name, sekihairitsu, votes, result.`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = a.instrument("national", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		path := a.fileArg(args, a.cfg.Data.National)
		if path == "" {
			return fmt.Errorf("%w: pass a national election file or set data.national", ErrNoFile)
		}

		e, err := ingest.LoadNational(ctx, path)
		if err != nil {
			return err
		}

		q.Sort = national.SortKey(sort)

		view, err := dashboard.National(e, q)
		if err != nil {
			return err
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, view, func() string {
			return nationalTables(view, q)
		})
	})

	cmd.Flags().StringVar(&q.Block, "block", "", "proportional block name")
	cmd.Flags().StringVar(&q.Party, "party", "", "party name")
	cmd.Flags().StringVar(&sort, "sort", string(national.SortRank), "candidate sort key")
	cmd.Flags().BoolVar(&q.Desc, "desc", false, "sort descending")

	return cmd
}

func nationalTables(view *dashboard.NationalView, q dashboard.NationalQuery) string {
	switch {
	case view.Candidates != nil:
		return terminal.HireiTable(view.Candidates)
	case view.Performance != nil:
		return terminal.PerformanceTable(q.Party, view.Performance)
	}

	parts := []string{
		terminal.SeatTable(view.Seats),
		terminal.SeatMatrixTable(view.Blocks, view.BlockParties),
	}

	return strings.Join(parts, "\n")
}
