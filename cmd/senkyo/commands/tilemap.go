package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

// ErrNoFile is returned when a command needs a file that neither the
// arguments nor the configuration name.
var ErrNoFile = errors.New("no input file")

type tilemapOptions struct {
	mode     string
	party    string
	year     string
	prev     string
	prevYear string
}

func (a *app) tilemapCommand() *cobra.Command {
	var opts tilemapOptions

	cmd := &cobra.Command{
		Use:   "tilemap [tiles.json]",
		Short: "Prefecture tile map cells and colours",
		Long: `Lay out the 47-prefecture tile grid and colour each tile.

Modes:
  turnout  turnout bands (default)
  party    a party's vote rate, shaded in the party colour (--party)
  change   turnout change against a previous election

In change mode the previous election comes from --prev, --prev-year, or
the next older year of a year-keyed file.`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = a.instrument("tilemap", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		path := a.fileArg(args, a.cfg.Data.Tiles)
		if path == "" {
			return fmt.Errorf("%w: pass a tiles file or set data.tiles", ErrNoFile)
		}

		cells, err := a.tileCells(ctx, path, opts)
		if err != nil {
			return err
		}

		return terminal.Write(cmd.OutOrStdout(), a.format, cells, func() string {
			return terminal.CellTable(cells)
		})
	})

	cmd.Flags().StringVar(&opts.mode, "mode", string(tilemap.ModeTurnout), "colour mode: turnout, party, change")
	cmd.Flags().StringVar(&opts.party, "party", "", "party for party mode")
	cmd.Flags().StringVar(&opts.year, "year", "", "election year of a year-keyed file (default: latest)")
	cmd.Flags().StringVar(&opts.prev, "prev", "", "previous election tiles file for change mode")
	cmd.Flags().StringVar(&opts.prevYear, "prev-year", "", "previous election year in the same file for change mode")

	return cmd
}

func (a *app) tileCells(ctx context.Context, path string, opts tilemapOptions) ([]tilemap.Cell, error) {
	tiles, err := ingest.LoadTiles(ctx, path, opts.year)
	if err != nil {
		return nil, err
	}

	q := dashboard.TileQuery{Mode: tilemap.ColorMode(opts.mode), Party: opts.party}

	if q.Mode == tilemap.ModeChange {
		q.Prev, err = a.previousTiles(ctx, path, opts)
		if err != nil {
			return nil, err
		}
	}

	return dashboard.Tiles(tiles, q)
}

func (a *app) previousTiles(ctx context.Context, path string, opts tilemapOptions) ([]tilemap.PrefectureTile, error) {
	if opts.prev != "" {
		return ingest.LoadTiles(ctx, opts.prev, opts.prevYear)
	}

	if opts.prevYear != "" {
		return ingest.LoadTiles(ctx, path, opts.prevYear)
	}

	years, err := ingest.TileYears(ctx, path)
	if err != nil {
		return nil, err
	}

	current := opts.year
	if current == "" && len(years) > 0 {
		current = years[0]
	}

	// years is newest first.
	i := slices.Index(years, current)
	if i < 0 || i+1 >= len(years) {
		a.logger().WarnContext(ctx, "no previous election, change mode falls back to turnout", "path", path)

		return nil, nil
	}

	return ingest.LoadTiles(ctx, path, years[i+1])
}

// fileArg returns the first argument, or the configured path resolved
// against the data directory.
func (a *app) fileArg(args []string, configured string) string {
	if len(args) > 0 {
		return args[0]
	}

	return a.cfg.Data.Resolve(configured)
}
