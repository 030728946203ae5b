package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

func (a *app) summaryCommand() *cobra.Command {
	var (
		ff     filterFlags
		byWard bool
	)

	cmd := &cobra.Command{
		Use:   "summary [csv...]",
		Short: "Party vote totals, shares and seats",
		Long: `Summarize party totals for one election year.

Without arguments the CSV sources from the configuration are read.

Examples:
  senkyo summary data/2026-ota.csv data/2026-meguro.csv
  senkyo summary --year 2022 --by-ward -f json`,
	}

	cmd.RunE = a.instrument("summary", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		rows, err := a.loadRows(ctx, args)
		if err != nil {
			return err
		}

		f := ff.filter(a.cfg.Data.DefaultYear)
		sum := dashboard.Summarize(dashboard.Apply(rows, f), f.Year)

		if !byWard {
			sum.Wards = nil
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, sum, func() string {
			out := terminal.PartyTable(sum.Parties)
			if byWard {
				out += "\n" + terminal.WardTable(sum.Wards)
			}

			return out
		})
	})

	ff.register(cmd, true)
	cmd.Flags().BoolVar(&byWard, "by-ward", false, "also summarize each ward")

	return cmd
}

func (a *app) districtsCommand() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "districts [csv...]",
		Short: "Per-district results with winners flagged",
	}

	cmd.RunE = a.instrument("districts", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		rows, err := a.loadRows(ctx, args)
		if err != nil {
			return err
		}

		districts := dashboard.Districts(dashboard.Apply(rows, ff.filter(a.cfg.Data.DefaultYear)))

		return terminal.Write(cmd.OutOrStdout(), a.format, districts, func() string {
			return terminal.DistrictTable(districts)
		})
	})

	ff.register(cmd, true)

	return cmd
}

func (a *app) heatmapCommand() *cobra.Command {
	var (
		ff    filterFlags
		party string
	)

	cmd := &cobra.Command{
		Use:   "heatmap [csv...]",
		Short: "One value per ward: a party's vote share, or turnout",
	}

	cmd.RunE = a.instrument("heatmap", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		rows, err := a.loadRows(ctx, args)
		if err != nil {
			return err
		}

		data := election.Heatmap(dashboard.Apply(rows, ff.filter(a.cfg.Data.DefaultYear)), party)

		return terminal.Write(cmd.OutOrStdout(), a.format, data, func() string {
			return terminal.HeatmapTable(data)
		})
	})

	ff.register(cmd, false)
	cmd.Flags().StringVar(&party, "party", "", "party whose vote share to map (default: turnout)")

	return cmd
}
