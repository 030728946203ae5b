package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/config"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

// ErrNoData is returned when no result rows could be loaded.
var ErrNoData = errors.New("no election data")

// filterFlags are the row filters shared by the CSV commands.
type filterFlags struct {
	year    int
	parties []string
	region  string
}

func (ff *filterFlags) register(cmd *cobra.Command, withParty bool) {
	cmd.Flags().IntVar(&ff.year, "year", 0, "election year (default: data.default_year)")
	cmd.Flags().StringVar(&ff.region, "region", "", "keep only this region (ward or city) name")

	if withParty {
		cmd.Flags().StringSliceVar(&ff.parties, "parties", nil, "keep only these parties (comma separated)")
	}
}

func (ff *filterFlags) filter(defaultYear int) dashboard.Filter {
	year := ff.year
	if year == 0 {
		year = defaultYear
	}

	f := dashboard.Reduce(dashboard.DefaultFilter(), dashboard.SelectYear{Year: year})
	f = dashboard.Reduce(f, dashboard.SelectParties{Parties: ff.parties})

	return dashboard.Reduce(f, dashboard.SelectRegion{Region: ff.region})
}

// dataConfig returns the configured data section with CSV sources replaced
// by paths when any are given. Paths are made absolute so the data
// directory does not apply to them.
func (a *app) dataConfig(paths []string) (config.DataConfig, error) {
	data := a.cfg.Data
	if len(paths) == 0 {
		return data, nil
	}

	data.Sources = make([]string, len(paths))

	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return data, fmt.Errorf("resolve %s: %w", p, err)
		}

		data.Sources[i] = abs
	}

	return data, nil
}

func (a *app) loader() *dashboard.Loader {
	l := &dashboard.Loader{Logger: a.logger(), Tracer: a.providers.Tracer}

	if m, err := observability.NewLoadMetrics(a.providers.Meter); err == nil {
		l.Metrics = m
	}

	return l
}

// load reads the dataset: the given CSV paths (or configured sources) plus
// every configured JSON file.
func (a *app) load(ctx context.Context, paths []string) (*dashboard.Dataset, error) {
	data, err := a.dataConfig(paths)
	if err != nil {
		return nil, err
	}

	return a.loader().Load(ctx, data), nil
}

// loadRows reads only CSV rows and fails when none could be loaded.
func (a *app) loadRows(ctx context.Context, paths []string) ([]election.Row, error) {
	data, err := a.dataConfig(paths)
	if err != nil {
		return nil, err
	}

	ds := a.loader().Load(ctx, config.DataConfig{Sources: data.SourcePaths()})

	if len(ds.Rows) > 0 {
		return ds.Rows, nil
	}

	if missing := ds.Unavailable(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoData, missing[0].Err)
	}

	return nil, fmt.Errorf("%w: pass CSV files or set data.sources", ErrNoData)
}
