package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/precinct"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

// Tool name constants.
const (
	ToolNameSummary   = "senkyo_summary"
	ToolNameDistricts = "senkyo_districts"
	ToolNameHeatmap   = "senkyo_heatmap"
	ToolNameCompare   = "senkyo_compare"
	ToolNameTilemap   = "senkyo_tilemap"
	ToolNameNational  = "senkyo_national"
	ToolNamePrecincts = "senkyo_precincts"
	ToolNameValidate  = "senkyo_validate"
)

// MaxContentBytes caps inline content passed to the validate tool (8 MB).
const MaxContentBytes = 8 << 20

// Sentinel errors for tool input validation.
var (
	// ErrNoInput indicates neither path nor content was given.
	ErrNoInput = errors.New("either path or content is required")
	// ErrPathNotAbsolute indicates the path is relative.
	ErrPathNotAbsolute = errors.New("path must be absolute")
	// ErrMissingName indicates inline content came without a file name.
	ErrMissingName = errors.New("name is required with inline content")
	// ErrContentTooLarge indicates the content exceeds the size limit.
	ErrContentTooLarge = errors.New("content exceeds maximum size")
	// ErrMissingFrom indicates the compare tool was called without a base year.
	ErrMissingFrom = errors.New("from year is required")
)

// Input types (auto-generate JSON schemas via struct tags).

// FilterInput narrows the loaded rows.
type FilterInput struct {
	Parties []string `json:"parties,omitempty" jsonschema:"keep only these party names"`
	Region  string   `json:"region,omitempty"  jsonschema:"keep only this region name (e.g. 大田区)"`
	Year    int      `json:"year,omitempty"    jsonschema:"election year (default: 2026)"`
}

// HeatmapInput is the input schema for the senkyo_heatmap tool.
type HeatmapInput struct {
	Parties []string `json:"parties,omitempty" jsonschema:"keep only these party names"`
	Region  string   `json:"region,omitempty"  jsonschema:"keep only this region name"`
	Target  string   `json:"target,omitempty"  jsonschema:"party whose vote share to map; empty maps turnout"`
	Year    int      `json:"year,omitempty"    jsonschema:"election year (default: 2026)"`
}

// CompareInput is the input schema for the senkyo_compare tool.
type CompareInput struct {
	From    int      `json:"from"              jsonschema:"earlier election year"`
	Parties []string `json:"parties,omitempty" jsonschema:"keep only these party names"`
	Region  string   `json:"region,omitempty"  jsonschema:"keep only this region name"`
	To      int      `json:"to,omitempty"      jsonschema:"later election year (default: 2026)"`
}

// TilemapInput is the input schema for the senkyo_tilemap tool.
type TilemapInput struct {
	Mode  string `json:"mode,omitempty"  jsonschema:"turnout, party or change (default: turnout)"`
	Party string `json:"party,omitempty" jsonschema:"party name for party mode"`
}

// NationalInput is the input schema for the senkyo_national tool.
type NationalInput struct {
	Block string `json:"block,omitempty" jsonschema:"proportional block name (e.g. 東京)"`
	Desc  bool   `json:"desc,omitempty"  jsonschema:"sort candidates descending"`
	Party string `json:"party,omitempty" jsonschema:"party name"`
	Sort  string `json:"sort,omitempty"  jsonschema:"rank, name, sekihairitsu, votes or result (default: rank)"`
}

// PrecinctsInput is the input schema for the senkyo_precincts tool.
type PrecinctsInput struct {
	Area         string `json:"area,omitempty"         jsonschema:"area name (e.g. 蒲田)"`
	Constituency string `json:"constituency,omitempty" jsonschema:"constituency name (e.g. 4区)"`
}

// ValidateInput is the input schema for the senkyo_validate tool.
type ValidateInput struct {
	Content string `json:"content,omitempty" jsonschema:"inline file content"`
	Name    string `json:"name,omitempty"    jsonschema:"file name for inline content; .csv selects CSV checks"`
	Path    string `json:"path,omitempty"    jsonschema:"absolute path to a CSV or JSON file"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func (in FilterInput) filter() dashboard.Filter {
	f := dashboard.DefaultFilter()

	if in.Year != 0 {
		f = dashboard.Reduce(f, dashboard.SelectYear{Year: in.Year})
	}

	f = dashboard.Reduce(f, dashboard.SelectParties{Parties: in.Parties})

	return dashboard.Reduce(f, dashboard.SelectRegion{Region: in.Region})
}

func (s *Server) rows(in FilterInput) ([]election.Row, dashboard.Filter) {
	f := in.filter()

	return dashboard.Apply(s.ds.Rows, f), f
}

func (s *Server) handleSummary(_ context.Context, _ *mcpsdk.CallToolRequest, in FilterInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	rows, f := s.rows(in)

	return jsonResult(dashboard.Summarize(rows, f.Year))
}

func (s *Server) handleDistricts(_ context.Context, _ *mcpsdk.CallToolRequest, in FilterInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	rows, _ := s.rows(in)

	return jsonResult(dashboard.Districts(rows))
}

func (s *Server) handleHeatmap(_ context.Context, _ *mcpsdk.CallToolRequest, in HeatmapInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	rows, _ := s.rows(FilterInput{Parties: in.Parties, Region: in.Region, Year: in.Year})

	return jsonResult(election.Heatmap(rows, in.Target))
}

func (s *Server) handleCompare(_ context.Context, _ *mcpsdk.CallToolRequest, in CompareInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.From == 0 {
		return errorResult(ErrMissingFrom)
	}

	f := FilterInput{Parties: in.Parties, Region: in.Region, Year: in.To}.filter()

	return jsonResult(dashboard.CompareYears(s.ds.Rows, f, in.From, f.Year))
}

func (s *Server) handleTilemap(_ context.Context, _ *mcpsdk.CallToolRequest, in TilemapInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	cells, err := dashboard.Tiles(s.ds.Tiles, dashboard.TileQuery{Mode: tilemap.ColorMode(in.Mode), Party: in.Party})
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(cells)
}

func (s *Server) handleNational(_ context.Context, _ *mcpsdk.CallToolRequest, in NationalInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	view, err := dashboard.National(s.ds.National, dashboard.NationalQuery{
		Block: in.Block,
		Party: in.Party,
		Sort:  national.SortKey(in.Sort),
		Desc:  in.Desc,
	})
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(view)
}

func handlePrecincts(_ context.Context, _ *mcpsdk.CallToolRequest, in PrecinctsInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	switch {
	case in.Constituency != "":
		return jsonResult(precinct.ByConstituency(in.Constituency))
	case in.Area != "":
		return jsonResult(precinct.ByArea(in.Area))
	default:
		return jsonResult(precinct.All())
	}
}

func handleValidate(ctx context.Context, _ *mcpsdk.CallToolRequest, in ValidateInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateInput(in); err != nil {
		return errorResult(err)
	}

	if in.Content != "" {
		return jsonResult(ingest.ValidateBytes(in.Name, []byte(in.Content)))
	}

	verdict, err := ingest.Validate(ctx, in.Path)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(verdict)
}

func validateInput(in ValidateInput) error {
	switch {
	case in.Content != "":
		if in.Name == "" {
			return ErrMissingName
		}

		if len(in.Content) > MaxContentBytes {
			return fmt.Errorf("%w: %d bytes (max %d)", ErrContentTooLarge, len(in.Content), MaxContentBytes)
		}

		return nil
	case in.Path != "":
		if !filepath.IsAbs(in.Path) {
			return fmt.Errorf("%w: %s", ErrPathNotAbsolute, in.Path)
		}

		return nil
	default:
		return ErrNoInput
	}
}
