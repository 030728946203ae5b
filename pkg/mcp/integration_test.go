package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/mcp"
	"github.com/Sumatoshi-tech/senkyo/pkg/observability"
)

func sampleDataset() *dashboard.Dataset {
	return &dashboard.Dataset{Rows: []election.Row{
		{Year: 2026, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "自民", CandidateName: "A", Votes: 600, EligibleVoters: 2000},
		{Year: 2026, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "立民", CandidateName: "B", Votes: 400, EligibleVoters: 2000},
		{Year: 2022, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "自民", CandidateName: "A", Votes: 500, EligibleVoters: 2000},
		{Year: 2022, RegionType: election.RegionWard, RegionName: "大田区", District: "1", PartyName: "立民", CandidateName: "B", Votes: 500, EligibleVoters: 2000},
	}}
}

// connect starts srv on in-memory transports and returns a client session.
func connect(t *testing.T, srv *mcp.Server) (context.Context, *mcpsdk.ClientSession) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return ctx, session
}

func call(t *testing.T, ctx context.Context, session *mcpsdk.ClientSession, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotNil(t, result)

	return result
}

func text(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)

	tc, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return tc.Text
}

func TestMCPServer_ToolsList(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})
	ctx, session := connect(t, srv)

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	toolNames := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		toolNames = append(toolNames, tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
	}

	assert.ElementsMatch(t, srv.ListToolNames(), toolNames)
	assert.Contains(t, toolNames, mcp.ToolNameSummary)
	assert.Contains(t, toolNames, mcp.ToolNameValidate)
}

func TestMCPServer_Summary(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{Dataset: sampleDataset()}))

	result := call(t, ctx, session, mcp.ToolNameSummary, map[string]any{"year": 2022})
	assert.False(t, result.IsError)

	var sum dashboard.Summary
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &sum))
	assert.Equal(t, 2022, sum.Year)
	require.Len(t, sum.Parties, 2)
	assert.Equal(t, 500, sum.Parties[0].Votes)
}

func TestMCPServer_Compare(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{Dataset: sampleDataset()}))

	result := call(t, ctx, session, mcp.ToolNameCompare, map[string]any{"from": 2022})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "自民")
}

func TestMCPServer_Errors(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{name: "no national data", tool: mcp.ToolNameNational, args: map[string]any{}},
		{name: "no tiles", tool: mcp.ToolNameTilemap, args: map[string]any{}},
		{name: "validate without input", tool: mcp.ToolNameValidate, args: map[string]any{}},
		{name: "validate relative path", tool: mcp.ToolNameValidate, args: map[string]any{"path": "data/x.csv"}},
		{name: "content without name", tool: mcp.ToolNameValidate, args: map[string]any{"content": "a,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, ctx, session, tt.tool, tt.args)
			assert.True(t, result.IsError)
		})
	}
}

func TestMCPServer_ValidateContent(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := call(t, ctx, session, mcp.ToolNameValidate, map[string]any{
		"name":    "bad.csv",
		"content": "year,votes\n2026,1\n",
	})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "missing column: region_name")
}

func TestMCPServer_Precincts(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result := call(t, ctx, session, mcp.ToolNamePrecincts, map[string]any{"area": "蒲田"})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "蒲田")
}

func TestMCPServer_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{Dataset: sampleDataset(), Metrics: red}))
	call(t, ctx, session, mcp.ToolNameDistricts, map[string]any{})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	found := false

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "senkyo.requests.total" {
				found = true
			}
		}
	}

	assert.True(t, found)
}
