package ingest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

// Kind names a JSON dataset shape.
type Kind string

// Known dataset kinds.
const (
	KindNational Kind = "national"
	KindTiles    Kind = "tiles"
	KindTrend    Kind = "trend"
	KindWard     Kind = "ward"
	KindMaster   Kind = "master"
)

// Kinds lists every dataset kind.
func Kinds() []Kind {
	return []Kind{KindNational, KindTiles, KindTrend, KindWard, KindMaster}
}

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var compiledSchemas = sync.OnceValues(func() (map[Kind]*gojsonschema.Schema, error) {
	out := make(map[Kind]*gojsonschema.Schema, len(Kinds()))

	for _, k := range Kinds() {
		raw, err := schemaFS.ReadFile("schemas/" + string(k) + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", k, err)
		}

		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", k, err)
		}

		out[k] = s
	}

	return out, nil
})

// ValidateJSON checks data against the schema of kind. Violations come back
// as *SchemaError.
func ValidateJSON(kind Kind, source string, data []byte) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}

	schema, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("unknown dataset kind %q", kind)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedInput, source, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.Field()+": "+re.Description())
	}

	return &SchemaError{Source: source, Kind: kind, Problems: problems}
}

// DetectKind returns the first kind whose schema accepts data. When none
// does, the returned error is the closest schema mismatch.
func DetectKind(source string, data []byte) (Kind, error) {
	var closest error

	fewest := -1

	for _, k := range Kinds() {
		err := ValidateJSON(k, source, data)
		if err == nil {
			return k, nil
		}

		var se *SchemaError
		if !errors.As(err, &se) {
			return "", err
		}

		if fewest < 0 || len(se.Problems) < fewest {
			fewest, closest = len(se.Problems), se
		}
	}

	return "", closest
}

func loadJSON[T any](ctx context.Context, path string, kind Kind) (*T, error) {
	data, err := readSource(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := ValidateJSON(kind, path, data); err != nil {
		return nil, unavailable(path, err)
	}

	var out T

	if err := json.Unmarshal(data, &out); err != nil {
		return nil, unavailable(path, fmt.Errorf("%w: %w", ErrMalformedInput, err))
	}

	return &out, nil
}

// LoadNational loads one House of Representatives election.
func LoadNational(ctx context.Context, path string) (*national.Election, error) {
	return loadJSON[national.Election](ctx, path, KindNational)
}

// LoadTrend loads the multi-year party rate series.
func LoadTrend(ctx context.Context, path string) (*compare.Trends, error) {
	return loadJSON[compare.Trends](ctx, path, KindTrend)
}

// LoadMaster loads a constituency's multi-year master record.
func LoadMaster(ctx context.Context, path string) (*compare.MasterData, error) {
	return loadJSON[compare.MasterData](ctx, path, KindMaster)
}

type tilesFile struct {
	Prefectures []tilemap.PrefectureTile `json:"prefectures"`
	Elections   map[string]struct {
		Prefectures []tilemap.PrefectureTile `json:"prefectures"`
	} `json:"elections"`
}

// LoadTiles loads prefecture tiles. Files keyed by election year pick the
// given year, or the latest one when year is empty.
func LoadTiles(ctx context.Context, path, year string) ([]tilemap.PrefectureTile, error) {
	f, err := loadJSON[tilesFile](ctx, path, KindTiles)
	if err != nil {
		return nil, err
	}

	if len(f.Elections) == 0 {
		return f.Prefectures, nil
	}

	y, err := pickYear(path, f.Elections, year)
	if err != nil {
		return nil, err
	}

	return f.Elections[y].Prefectures, nil
}

// TileYears lists the election years of a year-keyed tiles file, newest
// first. Files with a single unkeyed election yield nil.
func TileYears(ctx context.Context, path string) ([]string, error) {
	f, err := loadJSON[tilesFile](ctx, path, KindTiles)
	if err != nil {
		return nil, err
	}

	years := slices.Sorted(maps.Keys(f.Elections))
	slices.Reverse(years)

	return years, nil
}

type wardFile struct {
	Elections map[string]tilemap.LocalElection `json:"elections"`
}

// LoadWardElection loads one year of a ward-level local election file, the
// latest year when year is empty.
func LoadWardElection(ctx context.Context, path, year string) (*tilemap.LocalElection, error) {
	f, err := loadJSON[wardFile](ctx, path, KindWard)
	if err != nil {
		return nil, err
	}

	y, err := pickYear(path, f.Elections, year)
	if err != nil {
		return nil, err
	}

	e := f.Elections[y]

	return &e, nil
}

func pickYear[V any](path string, byYear map[string]V, year string) (string, error) {
	if year == "" {
		if len(byYear) == 0 {
			return "", unavailable(path, fmt.Errorf("%w: no elections", ErrMalformedInput))
		}

		return slices.Max(slices.Collect(maps.Keys(byYear))), nil
	}

	if _, ok := byYear[year]; !ok {
		return "", unavailable(path, fmt.Errorf("no election for %s", year))
	}

	return year, nil
}
