package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
)

// CSV column names in canonical order.
const (
	ColYear           = "year"
	ColRegionType     = "region_type"
	ColRegionName     = "region_name"
	ColDistrict       = "district"
	ColPartyName      = "party_name"
	ColCandidateName  = "candidate_name"
	ColVotes          = "votes"
	ColEligibleVoters = "eligible_voters"
)

// RequiredColumns is the canonical CSV header.
var RequiredColumns = []string{
	ColYear, ColRegionType, ColRegionName, ColDistrict,
	ColPartyName, ColCandidateName, ColVotes, ColEligibleVoters,
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// ValidateHeaders returns the required columns missing from headers, in
// canonical order. Headers are compared trimmed and lower-cased.
func ValidateHeaders(headers []string) []string {
	have := make([]string, len(headers))
	for i, h := range headers {
		have[i] = normalizeHeader(h)
	}

	var missing []string

	for _, col := range RequiredColumns {
		if !slices.Contains(have, col) {
			missing = append(missing, col)
		}
	}

	return missing
}

// ParseCSV reads election rows from r. Every required column must be present
// in the header. Counts that do not parse become 0; a row whose year does not
// parse is dropped. Blank lines are ignored.
func ParseCSV(r io.Reader) ([]election.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRows
	}

	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedInput, err)
	}

	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), utf8BOM))
	}

	if missing := ValidateHeaders(header); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[normalizeHeader(h)]; !dup {
			index[normalizeHeader(h)] = i
		}
	}

	var rows []election.Row

	for {
		rec, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, readErr)
		}

		if blank(rec) {
			continue
		}

		field := func(col string) string {
			if i := index[col]; i < len(rec) {
				return rec[i]
			}

			return ""
		}

		year, ok := leadingInt(field(ColYear))
		if !ok {
			continue
		}

		votes, _ := leadingInt(field(ColVotes))
		eligible, _ := leadingInt(field(ColEligibleVoters))

		rows = append(rows, election.Row{
			Year:           year,
			RegionType:     election.RegionType(field(ColRegionType)),
			RegionName:     field(ColRegionName),
			District:       field(ColDistrict),
			PartyName:      field(ColPartyName),
			CandidateName:  field(ColCandidateName),
			Votes:          votes,
			EligibleVoters: eligible,
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return rows, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}

// leadingInt parses the integer prefix of s after leading whitespace, so
// "12 votes" is 12 and "abc" fails.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

// WriteCSV writes rows with the canonical header.
func WriteCSV(w io.Writer, rows []election.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(RequiredColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Year),
			string(r.RegionType),
			r.RegionName,
			r.District,
			r.PartyName,
			r.CandidateName,
			strconv.Itoa(r.Votes),
			strconv.Itoa(r.EligibleVoters),
		}

		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// LoadCSVFile reads and parses a CSV file. Failure to read the file is
// reported as ErrUnavailable; content problems keep their own error.
func LoadCSVFile(ctx context.Context, path string) ([]election.Row, error) {
	data, err := readSource(ctx, path)
	if err != nil {
		return nil, err
	}

	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

func readSource(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable(path, err)
	}

	return data, nil
}
