package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/precinct"
	"github.com/Sumatoshi-tech/senkyo/pkg/report"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

const indexPageID = "index"

var errBadQuery = errors.New("bad query parameter")

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(rw http.ResponseWriter, hr *http.Request, code int, v any) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(code)

	enc := json.NewEncoder(rw)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		s.logger.ErrorContext(hr.Context(), "failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(rw http.ResponseWriter, hr *http.Request, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errBadQuery), errors.Is(err, ingest.ErrMalformedInput), errors.Is(err, dashboard.ErrBadMode):
		code = http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotFound), errors.Is(err, dashboard.ErrNoNational),
		errors.Is(err, dashboard.ErrNoTiles), errors.Is(err, dashboard.ErrNoMaster):
		code = http.StatusNotFound
	}

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(hr.Context(), "request failed", "path", hr.URL.Path, "error", err)
	}

	s.writeJSON(rw, hr, code, errorBody{Error: err.Error()})
}

func queryInt(hr *http.Request, name string) (int, bool, error) {
	raw := hr.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q", errBadQuery, name, raw)
	}

	return v, true, nil
}

// queryList accepts both repeated and comma separated values.
func queryList(hr *http.Request, name string) []string {
	var out []string

	for _, v := range hr.URL.Query()[name] {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// filterFor applies query overrides to the shared filter without storing them.
func (s *Server) filterFor(hr *http.Request) (dashboard.Filter, error) {
	f := s.store.Filter()

	year, ok, err := queryInt(hr, "year")
	if err != nil {
		return f, err
	}

	if ok {
		f = dashboard.Reduce(f, dashboard.SelectYear{Year: year})
	}

	if names := queryList(hr, "party"); len(names) > 0 {
		f = dashboard.Reduce(f, dashboard.SelectParties{Parties: names})
	}

	if hr.URL.Query().Has("region") {
		f = dashboard.Reduce(f, dashboard.SelectRegion{Region: hr.URL.Query().Get("region")})
	}

	return f, nil
}

func (s *Server) handleGetFilter(rw http.ResponseWriter, hr *http.Request) {
	s.writeJSON(rw, hr, http.StatusOK, s.store.Filter())
}

func (s *Server) handlePutFilter(rw http.ResponseWriter, hr *http.Request) {
	var f dashboard.Filter

	if err := json.NewDecoder(hr.Body).Decode(&f); err != nil {
		s.writeError(rw, hr, fmt.Errorf("%w: filter body: %w", errBadQuery, err))

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, s.store.Dispatch(dashboard.SetFilter{Filter: f}))
}

func (s *Server) handleResetFilter(rw http.ResponseWriter, hr *http.Request) {
	s.writeJSON(rw, hr, http.StatusOK, s.store.Dispatch(dashboard.Reset{}))
}

func (s *Server) filteredRows(rw http.ResponseWriter, hr *http.Request) ([]election.Row, dashboard.Filter, bool) {
	f, err := s.filterFor(hr)
	if err != nil {
		s.writeError(rw, hr, err)

		return nil, f, false
	}

	return dashboard.Apply(s.store.Rows(), f), f, true
}

func (s *Server) handleRows(rw http.ResponseWriter, hr *http.Request) {
	if rows, _, ok := s.filteredRows(rw, hr); ok {
		s.writeJSON(rw, hr, http.StatusOK, rows)
	}
}

func (s *Server) handleSummary(rw http.ResponseWriter, hr *http.Request) {
	if rows, f, ok := s.filteredRows(rw, hr); ok {
		s.writeJSON(rw, hr, http.StatusOK, dashboard.Summarize(rows, f.Year))
	}
}

func (s *Server) handleDistricts(rw http.ResponseWriter, hr *http.Request) {
	if rows, _, ok := s.filteredRows(rw, hr); ok {
		s.writeJSON(rw, hr, http.StatusOK, dashboard.Districts(rows))
	}
}

func (s *Server) handleHeatmap(rw http.ResponseWriter, hr *http.Request) {
	if rows, _, ok := s.filteredRows(rw, hr); ok {
		s.writeJSON(rw, hr, http.StatusOK, election.Heatmap(rows, hr.URL.Query().Get("target")))
	}
}

func (s *Server) handleCompare(rw http.ResponseWriter, hr *http.Request) {
	f, err := s.filterFor(hr)
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	from, ok, err := queryInt(hr, "from")
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	if !ok {
		from = f.ComparisonYear
	}

	if from == 0 {
		s.writeError(rw, hr, fmt.Errorf("%w: from is required when no comparison year is selected", errBadQuery))

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, dashboard.CompareYears(s.store.Rows(), f, from, f.Year))
}

func (s *Server) handleTilemap(rw http.ResponseWriter, hr *http.Request) {
	q := hr.URL.Query()

	cells, err := dashboard.Tiles(s.ds.Tiles, dashboard.TileQuery{
		Mode:  tilemap.ColorMode(q.Get("mode")),
		Party: q.Get("party"),
	})
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, cells)
}

func (s *Server) handleNational(rw http.ResponseWriter, hr *http.Request) {
	q := hr.URL.Query()
	desc, _ := strconv.ParseBool(q.Get("desc"))

	view, err := dashboard.National(s.ds.National, dashboard.NationalQuery{
		Block: q.Get("block"),
		Party: q.Get("party"),
		Sort:  national.SortKey(q.Get("sort")),
		Desc:  desc,
	})
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, view)
}

func (s *Server) handleAreas(rw http.ResponseWriter, hr *http.Request) {
	year, _, err := queryInt(hr, "year")
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	prev, _, err := queryInt(hr, "prev")
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	view, err := dashboard.Areas(s.ds.Master, dashboard.AreaQuery{Year: year, Prev: prev, Area: hr.URL.Query().Get("area")})
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, view)
}

func (s *Server) handleTrends(rw http.ResponseWriter, hr *http.Request) {
	if s.ds.Trends == nil {
		s.writeError(rw, hr, fmt.Errorf("trends: %w", dashboard.ErrNotFound))

		return
	}

	s.writeJSON(rw, hr, http.StatusOK, s.ds.Trends)
}

func (s *Server) handlePrecincts(rw http.ResponseWriter, hr *http.Request) {
	q := hr.URL.Query()

	switch {
	case q.Get("constituency") != "":
		s.writeJSON(rw, hr, http.StatusOK, precinct.ByConstituency(q.Get("constituency")))
	case q.Get("area") != "":
		s.writeJSON(rw, hr, http.StatusOK, precinct.ByArea(q.Get("area")))
	default:
		s.writeJSON(rw, hr, http.StatusOK, precinct.All())
	}
}

type sourceStatus struct {
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Rows        int    `json:"rows"`
	Unavailable bool   `json:"unavailable"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleSources(rw http.ResponseWriter, hr *http.Request) {
	out := make([]sourceStatus, len(s.ds.Sources))

	for i, src := range s.ds.Sources {
		out[i] = sourceStatus{Path: src.Path, Kind: src.Kind, Rows: src.Rows, Unavailable: src.Unavailable()}
		if src.Err != nil {
			out[i].Error = src.Err.Error()
		}
	}

	s.writeJSON(rw, hr, http.StatusOK, out)
}

type importResult struct {
	Count int `json:"count"`
}

func (s *Server) handleImport(rw http.ResponseWriter, hr *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(rw, hr.Body, maxImportBytes))
	if err != nil {
		s.writeError(rw, hr, fmt.Errorf("%w: read body: %w", errBadQuery, err))

		return
	}

	n, err := s.store.Import(string(body))
	if err != nil {
		s.writeError(rw, hr, err)

		return
	}

	s.cache.clear()
	s.logger.InfoContext(hr.Context(), "rows imported", "count", n)
	s.writeJSON(rw, hr, http.StatusCreated, importResult{Count: n})
}

func (s *Server) buildPages() []report.NamedPage {
	ds := *s.ds
	ds.Rows = s.store.Rows()

	return report.Build(&ds, s.store.Filter(), s.theme)
}

func (s *Server) handleIndex(rw http.ResponseWriter, hr *http.Request) {
	s.servePage(rw, hr, indexPageID, func(pages []report.NamedPage) (*report.Page, error) {
		metas := make([]report.PageMeta, len(pages))
		for i, p := range pages {
			metas[i] = p.Meta
			metas[i].ID = "report/" + p.Meta.ID
		}

		site := &report.Site{Title: s.title, Theme: s.theme}

		return site.Index(metas)
	})
}

func (s *Server) handleReport(rw http.ResponseWriter, hr *http.Request) {
	id := strings.TrimSuffix(hr.PathValue("id"), ".html")

	s.servePage(rw, hr, "report/"+id, func(pages []report.NamedPage) (*report.Page, error) {
		for _, p := range pages {
			if p.Meta.ID == id {
				return p.Page.WithTheme(s.theme), nil
			}
		}

		return nil, fmt.Errorf("page %q: %w", id, dashboard.ErrNotFound)
	})
}

// servePage answers from the page cache, building and rendering on a miss.
func (s *Server) servePage(rw http.ResponseWriter, hr *http.Request, id string, pick func([]report.NamedPage) (*report.Page, error)) {
	html, ok := s.cache.get(id)
	if !ok {
		gen := s.cache.gen()

		page, err := pick(s.buildPages())
		if errors.Is(err, dashboard.ErrNotFound) {
			http.NotFound(rw, hr)

			return
		}

		if err != nil {
			s.writeError(rw, hr, err)

			return
		}

		var buf bytes.Buffer

		if err := page.Render(&buf); err != nil {
			s.writeError(rw, hr, fmt.Errorf("render %s: %w", id, err))

			return
		}

		html = buf.Bytes()
		s.cache.put(id, html, gen)
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := rw.Write(html); err != nil {
		s.logger.DebugContext(hr.Context(), "failed to write page", "error", err)
	}
}
