package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// Municipality types as printed in Tokyo's result sheets.
const (
	TypeWard = "区部"
	TypeCity = "市部"
)

// Labels of the aggregate rows.
const (
	grandTotalLabel = "都計"
	subtotalMarker  = "計"
	totalKey        = "合計"
)

// WorkbookLayout locates the vote table inside a sheet. Rows and columns are
// 1-based as displayed by spreadsheet software.
type WorkbookLayout struct {
	Sheet         string `json:"sheet,omitempty"  yaml:"sheet"`
	PartyRow      int    `json:"partyRow"         yaml:"party_row"`
	FirstPartyCol int    `json:"firstPartyCol"    yaml:"first_party_col"`
	LastPartyCol  int    `json:"lastPartyCol"     yaml:"last_party_col"`
	FirstDataRow  int    `json:"firstDataRow"     yaml:"first_data_row"`
	NameCol       int    `json:"nameCol"          yaml:"name_col"`
	TotalCol      int    `json:"totalCol"         yaml:"total_col"`
}

// DefaultWorkbookLayout matches the Tokyo election commission's
// proportional-vote-by-municipality sheet: parties in C6:M6, names in
// column A from row 9, totals in column N.
func DefaultWorkbookLayout() WorkbookLayout {
	return WorkbookLayout{
		PartyRow:      6,
		FirstPartyCol: 3,
		LastPartyCol:  13,
		FirstDataRow:  9,
		NameCol:       1,
		TotalCol:      14,
	}
}

// WorkbookParty is a party column of the sheet.
type WorkbookParty struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Municipality is one ward or city row.
type Municipality struct {
	Name  string         `json:"name"  yaml:"name"`
	Type  string         `json:"type"  yaml:"type"`
	Votes map[string]int `json:"votes" yaml:"votes"`
	Total int            `json:"total" yaml:"total"`
}

// Workbook is the decoded vote table.
type Workbook struct {
	ElectionType   string          `json:"electionType,omitempty" yaml:"election_type,omitempty"`
	ElectionDate   string          `json:"electionDate,omitempty" yaml:"election_date,omitempty"`
	Parties        []WorkbookParty `json:"parties"                yaml:"parties"`
	Total          map[string]int  `json:"total"                  yaml:"total"`
	Municipalities []Municipality  `json:"municipalities"         yaml:"municipalities"`
}

// ReadMunicipalityWorkbook opens an .xlsx file and decodes its vote table.
func ReadMunicipalityWorkbook(ctx context.Context, path string, layout WorkbookLayout) (*Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	defer f.Close()

	wb, err := DecodeWorkbook(f, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return wb, nil
}

// DecodeWorkbook reads the vote table out of an open workbook. Subtotal rows
// are skipped except the grand total, and rows that are neither a ward nor a
// city are ignored.
func DecodeWorkbook(f *excelize.File, layout WorkbookLayout) (*Workbook, error) {
	sheet := layout.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrMalformedInput, sheet, err)
	}

	wb := &Workbook{Total: make(map[string]int)}

	partyCols := make(map[string]int)

	for col := layout.FirstPartyCol; col <= layout.LastPartyCol; col++ {
		name := strings.TrimSpace(cell(rows, layout.PartyRow, col))
		if name == "" {
			continue
		}

		partyCols[name] = col
		wb.Parties = append(wb.Parties, WorkbookParty{ID: len(wb.Parties) + 1, Name: name})
	}

	if len(wb.Parties) == 0 {
		return nil, fmt.Errorf("%w: no party names in row %d", ErrMalformedInput, layout.PartyRow)
	}

	for r := layout.FirstDataRow; r <= len(rows); r++ {
		name := CleanMunicipalityName(cell(rows, r, layout.NameCol))
		if name == "" {
			continue
		}

		if strings.Contains(name, grandTotalLabel) {
			for _, p := range wb.Parties {
				wb.Total[p.Name] = cellInt(rows, r, partyCols[p.Name])
			}

			wb.Total[totalKey] = cellInt(rows, r, layout.TotalCol)

			continue
		}

		if strings.Contains(name, subtotalMarker) {
			continue
		}

		kind := MunicipalityType(name)
		if kind == "" {
			continue
		}

		m := Municipality{Name: name, Type: kind, Votes: make(map[string]int, len(wb.Parties))}

		for _, p := range wb.Parties {
			v := cellInt(rows, r, partyCols[p.Name])
			m.Votes[p.Name] = v
			m.Total += v
		}

		if t := cellInt(rows, r, layout.TotalCol); t != 0 {
			m.Total = t
		}

		wb.Municipalities = append(wb.Municipalities, m)
	}

	return wb, nil
}

// CleanMunicipalityName strips surrounding blanks and the ☆/★ markers the
// commission prefixes to some names.
func CleanMunicipalityName(name string) string {
	return strings.TrimLeftFunc(strings.TrimSpace(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '★' || r == '☆'
	})
}

// MunicipalityType classifies a name as a ward or a city (towns and villages
// count as cities). Returns "" for anything else.
func MunicipalityType(name string) string {
	switch {
	case strings.Contains(name, "区") && !strings.Contains(name, "選挙区"):
		return TypeWard
	case strings.ContainsAny(name, "市町村"):
		return TypeCity
	default:
		return ""
	}
}

func cell(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) || col < 1 || col > len(rows[row-1]) {
		return ""
	}

	return rows[row-1][col-1]
}

func cellInt(rows [][]string, row, col int) int {
	s := strings.TrimSpace(cell(rows, row, col))
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return int(f)
}
