package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

// ErrCompareArgs is returned when compare gets neither two files nor --from.
var ErrCompareArgs = errors.New("compare needs two CSV files or --from")

func (a *app) compareCommand() *cobra.Command {
	var (
		ff       filterFlags
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "compare [a.csv b.csv]",
		Short: "Year-over-year party comparison with swing buckets",
		Long: `Compare party totals of two elections.

With two files, the first is the earlier election. Without files, --from
and --to pick two years out of the configured sources.

Examples:
  senkyo compare data/2022-ota.csv data/2026-ota.csv
  senkyo compare --from 2022 --to 2026 --region 大田区`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("%w: got %d files", ErrCompareArgs, len(args))
			}

			return nil
		},
	}

	cmd.RunE = a.instrument("compare", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		var (
			comps          []compare.PartyComparison
			earlier, later string
			err            error
		)

		if len(args) == 2 {
			comps, earlier, later, err = a.compareFiles(ctx, args[0], args[1], ff)
		} else {
			comps, earlier, later, err = a.compareYears(ctx, ff, from, to)
		}

		if err != nil {
			return err
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, comps, func() string {
			return terminal.ComparisonTable(comps, earlier, later)
		})
	})

	ff.register(cmd, true)
	cmd.Flags().IntVar(&from, "from", 0, "earlier election year")
	cmd.Flags().IntVar(&to, "to", 0, "later election year (default: --year, then data.default_year)")

	return cmd
}

func (a *app) compareFiles(ctx context.Context, pathA, pathB string, ff filterFlags) ([]compare.PartyComparison, string, string, error) {
	rowsA, err := a.loadRows(ctx, []string{pathA})
	if err != nil {
		return nil, "", "", err
	}

	rowsB, err := a.loadRows(ctx, []string{pathB})
	if err != nil {
		return nil, "", "", err
	}

	// Each file is one election, so the year criterion stays off.
	f := ff.filter(0)
	f.Year = 0

	totalsA := election.PartyTotals(dashboard.Apply(rowsA, f))
	totalsB := election.PartyTotals(dashboard.Apply(rowsB, f))
	comps := compare.GeneratePartyComparison(compare.FromPartyResults(totalsA), compare.FromPartyResults(totalsB))

	return comps, yearLabel(rowsA, pathA), yearLabel(rowsB, pathB), nil
}

func (a *app) compareYears(ctx context.Context, ff filterFlags, from, to int) ([]compare.PartyComparison, string, string, error) {
	if from == 0 {
		return nil, "", "", ErrCompareArgs
	}

	rows, err := a.loadRows(ctx, nil)
	if err != nil {
		return nil, "", "", err
	}

	// --to wins over --year; either one wins over the configured default.
	if to != 0 {
		ff.year = to
	}

	f := ff.filter(a.cfg.Data.DefaultYear)

	return dashboard.CompareYears(rows, f, from, f.Year), strconv.Itoa(from), strconv.Itoa(f.Year), nil
}

// yearLabel names a file's election by its single year, or by the file name
// when it mixes years.
func yearLabel(rows []election.Row, path string) string {
	if years := election.Years(rows); len(years) == 1 {
		return strconv.Itoa(years[0])
	}

	return filepath.Base(path)
}
