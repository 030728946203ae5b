package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/precinct"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

func (a *app) precinctsCommand() *cobra.Command {
	var constituency, area string

	cmd := &cobra.Command{
		Use:   "precincts",
		Short: "Ota ward polling precincts and their towns",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = a.instrument("precincts", func(_ context.Context, cmd *cobra.Command, _ []string) error {
		var ps []precinct.Precinct

		switch {
		case constituency != "":
			ps = precinct.ByConstituency(constituency)
		case area != "":
			ps = precinct.ByArea(area)
		default:
			ps = precinct.All()
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, ps, func() string {
			return terminal.PrecinctTable(ps)
		})
	})

	cmd.Flags().StringVar(&constituency, "constituency", "", "constituency, e.g. 4区")
	cmd.Flags().StringVar(&area, "area", "", "area, e.g. 蒲田")

	return cmd
}
