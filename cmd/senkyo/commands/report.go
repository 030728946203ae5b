package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/report"
)

const defaultReportDir = "senkyo-report"

func (a *app) reportCommand() *cobra.Command {
	var (
		ff          filterFlags
		dir         string
		theme       string
		title       string
		compareYear int
	)

	cmd := &cobra.Command{
		Use:   "report [csv...]",
		Short: "Render HTML chart pages",
		Long: `Render the dataset as a directory of HTML chart pages plus an index.

Pages cover party totals, the comparison against --compare-year (or the
last two years of the master file), vote share trends, the prefecture
tile map with a ward radar, and national seats. Pages without data are
skipped and unavailable sources are listed on the summary page.`,
	}

	cmd.RunE = a.instrument("report", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		ds, err := a.load(ctx, args)
		if err != nil {
			return err
		}

		f := ff.filter(a.cfg.Data.DefaultYear)
		if compareYear != 0 {
			f = dashboard.Reduce(f, dashboard.SelectComparisonYear{Year: compareYear})
		}

		if theme == "" {
			theme = a.cfg.Report.Theme
		}

		if title == "" {
			title = a.cfg.Report.Title
		}

		site := &report.Site{Dir: dir, Title: title, Theme: report.ParseTheme(theme)}

		if err := site.Write(report.Build(ds, f, site.Theme)); err != nil {
			return err
		}

		if !a.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", filepath.Join(dir, "index.html"))
		}

		return nil
	})

	ff.register(cmd, true)
	cmd.Flags().StringVarP(&dir, "output", "o", defaultReportDir, "output directory")
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: report.theme)")
	cmd.Flags().StringVar(&title, "title", "", "site title (default: report.title)")
	cmd.Flags().IntVar(&compareYear, "compare-year", 0, "earlier year for the comparison page")

	return cmd
}
