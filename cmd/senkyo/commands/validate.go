package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

func (a *app) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check result CSV headers or JSON datasets against their schema",
		Long: `Validate result files without loading them.

Files ending in .csv must carry every required column. Any other file is
matched against the national, tiles, trend, ward and master schemas.

Exit status is 2 when any file has problems.

Examples:
  senkyo validate data/2026-ota.csv
  senkyo validate data/*.json -f json`,
		Args: cobra.MinimumNArgs(1),
	}

	cmd.RunE = a.instrument("validate", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		verdicts := make([]ingest.Verdict, 0, len(args))
		failed := 0

		for _, path := range args {
			v, err := ingest.Validate(ctx, path)
			if err != nil {
				v.Problems = []string{err.Error()}
			}

			if !v.Valid() {
				failed++
			}

			verdicts = append(verdicts, v)
		}

		var err error

		switch {
		case a.format != terminal.FormatTable:
			err = terminal.Write(cmd.OutOrStdout(), a.format, verdicts, nil)
		case a.quiet:
		case len(verdicts) == 1:
			printVerdict(cmd.OutOrStdout(), verdicts[0])
		default:
			err = terminal.Write(cmd.OutOrStdout(), a.format, verdicts, func() string {
				return terminal.VerdictTable(verdicts)
			})
		}

		if err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d files", ErrValidationFailed, failed, len(verdicts))
		}

		return nil
	})

	return cmd
}

func printVerdict(w io.Writer, v ingest.Verdict) {
	if v.Valid() {
		if v.Kind == ingest.KindCSV {
			color.New(color.FgGreen).Fprintf(w, "%s is a valid result CSV (%d rows)\n", v.Path, v.Rows)
		} else {
			color.New(color.FgGreen).Fprintf(w, "%s is a valid %s dataset\n", v.Path, v.Kind)
		}

		return
	}

	color.New(color.FgRed).Fprintf(w, "%s failed validation\n", v.Path)

	fmt.Fprintf(w, "\nProblems:\n")

	for _, p := range v.Problems {
		color.New(color.FgRed).Fprintf(w, "  - %s\n", p)
	}
}
