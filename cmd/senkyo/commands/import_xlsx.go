package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/terminal"
)

const outputFilePerm = 0o600

func (a *app) importXLSXCommand() *cobra.Command {
	var (
		output string
		layout = ingest.DefaultWorkbookLayout()
	)

	cmd := &cobra.Command{
		Use:   "import-xlsx <book.xlsx>",
		Short: "Convert a municipality vote workbook to JSON or YAML",
		Long: `Read the per-municipality proportional vote table of an election
commission workbook.

With -o the result is written to the file, as YAML when the name ends in
.yaml or .yml and JSON otherwise. Without -o it prints in --format.`,
		Args: cobra.ExactArgs(1),
	}

	cmd.RunE = a.instrument("import-xlsx", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		wb, err := ingest.ReadMunicipalityWorkbook(ctx, args[0], layout)
		if err != nil {
			return err
		}

		a.logger().InfoContext(ctx, "workbook imported",
			"path", args[0], "parties", len(wb.Parties), "municipalities", len(wb.Municipalities))

		if output == "" {
			return terminal.Write(cmd.OutOrStdout(), a.format, wb, func() string {
				return terminal.WorkbookTable(wb)
			})
		}

		return writeDataFile(output, wb)
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml)")
	cmd.Flags().StringVar(&layout.Sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().IntVar(&layout.PartyRow, "party-row", layout.PartyRow, "row holding party names")
	cmd.Flags().IntVar(&layout.FirstPartyCol, "first-party-col", layout.FirstPartyCol, "first party column")
	cmd.Flags().IntVar(&layout.LastPartyCol, "last-party-col", layout.LastPartyCol, "last party column")
	cmd.Flags().IntVar(&layout.FirstDataRow, "first-data-row", layout.FirstDataRow, "first municipality row")
	cmd.Flags().IntVar(&layout.NameCol, "name-col", layout.NameCol, "municipality name column")
	cmd.Flags().IntVar(&layout.TotalCol, "total-col", layout.TotalCol, "total votes column")

	return cmd
}

func writeDataFile(path string, v any) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, outputFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
