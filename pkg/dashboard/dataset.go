package dashboard

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/config"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

const tracerName = "senkyo"

// Source records how loading one file went. A source with Err set is an
// unavailable placeholder; the rest of the dataset still loads.
type Source struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Rows int    `json:"rows"`
	Err  error  `json:"-"`
}

// Unavailable reports whether the source failed to load.
func (s Source) Unavailable() bool { return s.Err != nil }

// Dataset is everything the views render from.
type Dataset struct {
	Rows    []election.Row
	Sources []Source

	National *national.Election
	Trends   *compare.Trends
	Master   *compare.MasterData
	Tiles    []tilemap.PrefectureTile
	Wards    *tilemap.LocalElection
}

// Unavailable returns the sources that failed to load.
func (d *Dataset) Unavailable() []Source {
	var out []Source

	for _, s := range d.Sources {
		if s.Unavailable() {
			out = append(out, s)
		}
	}

	return out
}

// Loader reads result files into a Dataset.
type Loader struct {
	Logger  *slog.Logger
	Metrics *observability.LoadMetrics

	// Tracer falls back to the global provider when nil.
	Tracer trace.Tracer
}

// LoadSources loads the CSV sources in order, logging and recording any that
// fail instead of aborting.
func LoadSources(ctx context.Context, logger *slog.Logger, sources []string) *Dataset {
	ds := &Dataset{}
	(&Loader{Logger: logger}).loadCSV(ctx, ds, sources)

	return ds
}

// Load reads the CSV sources and every optional JSON file named in cfg.
func (l *Loader) Load(ctx context.Context, cfg config.DataConfig) *Dataset {
	ctx, span := l.tracer().Start(ctx, "senkyo.load",
		trace.WithAttributes(attribute.Int("load.csv_sources", len(cfg.Sources))))
	defer span.End()

	ds := &Dataset{}
	l.loadCSV(ctx, ds, cfg.SourcePaths())

	if path := cfg.Resolve(cfg.National); path != "" {
		ds.National, _ = loadOne(ctx, l, ds, path, ingest.KindNational, ingest.LoadNational)
	}

	if path := cfg.Resolve(cfg.Trend); path != "" {
		ds.Trends, _ = loadOne(ctx, l, ds, path, ingest.KindTrend, ingest.LoadTrend)
	}

	if path := cfg.Resolve(cfg.Master); path != "" {
		ds.Master, _ = loadOne(ctx, l, ds, path, ingest.KindMaster, ingest.LoadMaster)
	}

	if path := cfg.Resolve(cfg.Tiles); path != "" {
		tiles, err := loadOne(ctx, l, ds, path, ingest.KindTiles,
			func(ctx context.Context, p string) (*[]tilemap.PrefectureTile, error) {
				t, err := ingest.LoadTiles(ctx, p, "")

				return &t, err
			})
		if err == nil {
			ds.Tiles = *tiles
		}
	}

	if path := cfg.Resolve(cfg.Wards); path != "" {
		ds.Wards, _ = loadOne(ctx, l, ds, path, ingest.KindWard,
			func(ctx context.Context, p string) (*tilemap.LocalElection, error) {
				return ingest.LoadWardElection(ctx, p, "")
			})
	}

	if missing := len(ds.Unavailable()); missing > 0 {
		span.SetAttributes(attribute.Int("load.unavailable", missing))
	}

	return ds
}

func (l *Loader) loadCSV(ctx context.Context, ds *Dataset, paths []string) {
	for _, path := range paths {
		rows, err := ingest.LoadCSVFile(ctx, path)
		l.record(ctx, ds, Source{Path: path, Kind: "csv", Rows: len(rows), Err: err})

		if err == nil {
			ds.Rows = append(ds.Rows, rows...)
		}
	}
}

func loadOne[T any](
	ctx context.Context, l *Loader, ds *Dataset, path string, kind ingest.Kind,
	load func(context.Context, string) (*T, error),
) (*T, error) {
	v, err := load(ctx, path)
	if err != nil {
		v = nil
	}

	l.record(ctx, ds, Source{Path: path, Kind: string(kind), Rows: boolCount(err == nil), Err: err})

	return v, err
}

func boolCount(ok bool) int {
	if ok {
		return 1
	}

	return 0
}

func (l *Loader) record(ctx context.Context, ds *Dataset, src Source) {
	ds.Sources = append(ds.Sources, src)

	if l.Metrics != nil {
		l.Metrics.RecordLoad(ctx, src.Path, src.Rows, src.Err)
	}

	if src.Err != nil {
		trace.SpanFromContext(ctx).SetStatus(codes.Error, "source unavailable")
		l.logger().WarnContext(ctx, "source unavailable", "path", src.Path, "kind", src.Kind, "error", src.Err)

		return
	}

	l.logger().DebugContext(ctx, "source loaded", "path", src.Path, "kind", src.Kind, "rows", src.Rows)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}

	return slog.Default()
}

func (l *Loader) tracer() trace.Tracer {
	if l.Tracer != nil {
		return l.Tracer
	}

	return otel.Tracer(tracerName)
}
