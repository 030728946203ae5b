package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
)

const sampleCSV = ` Year ,REGION_TYPE,region_name,district,party_name,candidate_name,votes,eligible_voters
2026,ward,大田区,1,自民,候補A,600,1000

2026,ward,大田区,1,立民,候補B,400,1000
2026,ward,大田区,2,自民,候補C,abc,2000
oops,ward,大田区,2,立民,候補D,700,2000
`

func TestParseCSV(t *testing.T) {
	t.Parallel()

	rows, err := ingest.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, election.Row{
		Year:           2026,
		RegionType:     election.RegionWard,
		RegionName:     "大田区",
		District:       "1",
		PartyName:      "自民",
		CandidateName:  "候補A",
		Votes:          600,
		EligibleVoters: 1000,
	}, rows[0])

	assert.Zero(t, rows[2].Votes, "unparsable votes degrade to zero")
	assert.Equal(t, 2000, rows[2].EligibleVoters)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	t.Parallel()

	_, err := ingest.ParseCSV(strings.NewReader("year,region_name,votes\n2026,A,1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrMalformedInput)

	var mc *ingest.MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, []string{"region_type", "district", "party_name", "candidate_name", "eligible_voters"}, mc.Missing)
}

func TestParseCSV_NoRows(t *testing.T) {
	t.Parallel()

	header := strings.Join(ingest.RequiredColumns, ",") + "\n"

	for name, input := range map[string]string{
		"empty":       "",
		"header_only": header,
		"bad_years":   header + "x,ward,A,1,P,C,1,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ingest.ParseCSV(strings.NewReader(input))
			require.ErrorIs(t, err, ingest.ErrNoRows)
			assert.ErrorIs(t, err, ingest.ErrMalformedInput)
		})
	}
}

func TestParseCSV_BOMAndShortRows(t *testing.T) {
	t.Parallel()

	input := "\ufeff" + strings.Join(ingest.RequiredColumns, ",") + "\n2024,city,八王子市,1,公明\n"

	rows, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, "公明", rows[0].PartyName)
	assert.Empty(t, rows[0].CandidateName)
	assert.Zero(t, rows[0].EligibleVoters)
}

func TestValidateHeaders(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ingest.ValidateHeaders([]string{
		" YEAR", "region_type", "Region_Name", "district", "party_name", "candidate_name", "votes", "eligible_voters ",
	}))
	assert.Equal(t, ingest.RequiredColumns, ingest.ValidateHeaders(nil))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	in, err := ingest.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ingest.WriteCSV(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "year,region_type,region_name,district,party_name,candidate_name,votes,eligible_voters\n"))

	out, err := ingest.ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadCSVFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rows, err := ingest.LoadCSVFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = ingest.LoadCSVFile(context.Background(), filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, ingest.ErrUnavailable)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ingest.LoadCSVFile(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
