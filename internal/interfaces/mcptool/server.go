// Package mcptool exposes player intelligence and valuations as Model
// Context Protocol tools.
package mcptool

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
	"go.opentelemetry.io/otel"
)

const (
	serverName    = "fantasy-baseball-mcp"
	maxBatchNames = 50
)

var tracer = otel.Tracer("fantasy-baseball/internal/interfaces/mcptool")

type IntelProvider interface {
	PlayerIntel(ctx context.Context, name string, sections []intel.Section) (intel.Packet, error)
	BatchIntel(ctx context.Context, names []string, sections []intel.Section) (map[string]intel.Packet, error)
}

type ValuationProvider interface {
	Rankings(ctx context.Context, posType string, count int, withIntel bool) (usecase.RankingsResult, error)
	Compare(ctx context.Context, first, second string) (usecase.Comparison, error)
	Value(ctx context.Context, name string) (usecase.ValueResult, error)
}

type PlayerIntelArgs struct {
	Name    string   `json:"name" jsonschema:"Player name, e.g. Aaron Judge (required)"`
	Include []string `json:"include,omitempty" jsonschema:"Sections: statcast, trends, context, discipline (default all)"`
}

type BatchIntelArgs struct {
	Names   []string `json:"names" jsonschema:"Player names, at most 50 (required)"`
	Include []string `json:"include,omitempty" jsonschema:"Sections (default statcast)"`
}

type RankingsArgs struct {
	PosType string `json:"pos_type,omitempty" jsonschema:"B for hitters or P for pitchers (default B)"`
	Count   int    `json:"count,omitempty" jsonschema:"Number of players (default 25)"`
	Intel   *bool  `json:"intel,omitempty" jsonschema:"Attach statcast intel to each player (default true)"`
}

type PlayerValueArgs struct {
	Name string `json:"name" jsonschema:"Player name, substring match (required)"`
}

type ComparePlayersArgs struct {
	Player1 string `json:"player1" jsonschema:"First player name (required)"`
	Player2 string `json:"player2" jsonschema:"Second player name (required)"`
}

// Tools binds the tool handlers to the intel and valuation services.
type Tools struct {
	intel     IntelProvider
	valuation ValuationProvider
	logger    *logging.Logger
}

func NewTools(intelProvider IntelProvider, valuationProvider ValuationProvider, logger *logging.Logger) *Tools {
	if logger == nil {
		logger = logging.Default()
	}
	return &Tools{intel: intelProvider, valuation: valuationProvider, logger: logger}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(tools *Tools, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_intel",
		Description: "Statcast quality, recent trends, social buzz and plate discipline for one MLB player",
	}, tools.PlayerIntel)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_intel",
		Description: "Intelligence packets for several players in one call",
	}, tools.BatchIntel)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rankings",
		Description: "Z-score fantasy rankings for hitters or pitchers",
	}, tools.Rankings)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_value",
		Description: "Raw projected stats and per-category z-scores for matching players",
	}, tools.PlayerValue)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_players",
		Description: "Category by category z-score comparison of two players",
	}, tools.ComparePlayers)

	return server
}

// NewHTTPHandler serves the tools over streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *Tools) PlayerIntel(ctx context.Context, _ *mcp.CallToolRequest, args PlayerIntelArgs) (*mcp.CallToolResult, any, error) {
	ctx, span := tracer.Start(ctx, "mcptool.PlayerIntel")
	defer span.End()

	name := strings.TrimSpace(args.Name)
	if name == "" {
		return toolError(fmt.Errorf("name is required")), nil, nil
	}
	sections, err := intel.ParseSections(args.Include)
	if err != nil {
		return toolError(err), nil, nil
	}

	packet, err := t.intel.PlayerIntel(ctx, name, sections)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp player_intel failed", "name", name, "error", err)
		return toolError(err), nil, nil
	}
	return toolMarshal(packet)
}

func (t *Tools) BatchIntel(ctx context.Context, _ *mcp.CallToolRequest, args BatchIntelArgs) (*mcp.CallToolResult, any, error) {
	ctx, span := tracer.Start(ctx, "mcptool.BatchIntel")
	defer span.End()

	if len(args.Names) == 0 {
		return toolError(fmt.Errorf("names is required")), nil, nil
	}
	if len(args.Names) > maxBatchNames {
		return toolError(fmt.Errorf("at most %d names per batch", maxBatchNames)), nil, nil
	}
	include := args.Include
	if len(include) == 0 {
		include = []string{string(intel.SectionStatcast)}
	}
	sections, err := intel.ParseSections(include)
	if err != nil {
		return toolError(err), nil, nil
	}

	packets, err := t.intel.BatchIntel(ctx, args.Names, sections)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp batch_intel failed", "names", len(args.Names), "error", err)
		return toolError(err), nil, nil
	}
	return toolMarshal(packets)
}

func (t *Tools) Rankings(ctx context.Context, _ *mcp.CallToolRequest, args RankingsArgs) (*mcp.CallToolResult, any, error) {
	ctx, span := tracer.Start(ctx, "mcptool.Rankings")
	defer span.End()

	posType := strings.ToUpper(strings.TrimSpace(args.PosType))
	if posType == "" {
		posType = "B"
	}
	if posType != "B" && posType != "P" {
		return toolError(fmt.Errorf("pos_type must be B or P")), nil, nil
	}
	if args.Count < 0 {
		return toolError(fmt.Errorf("count must not be negative")), nil, nil
	}
	withIntel := true
	if args.Intel != nil {
		withIntel = *args.Intel
	}

	result, err := t.valuation.Rankings(ctx, posType, args.Count, withIntel)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp rankings failed", "pos_type", posType, "error", err)
		return toolError(err), nil, nil
	}
	return toolMarshal(result)
}

func (t *Tools) PlayerValue(ctx context.Context, _ *mcp.CallToolRequest, args PlayerValueArgs) (*mcp.CallToolResult, any, error) {
	ctx, span := tracer.Start(ctx, "mcptool.PlayerValue")
	defer span.End()

	name := strings.TrimSpace(args.Name)
	if name == "" {
		return toolError(fmt.Errorf("name is required")), nil, nil
	}

	result, err := t.valuation.Value(ctx, name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolMarshal(result)
}

func (t *Tools) ComparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args ComparePlayersArgs) (*mcp.CallToolResult, any, error) {
	ctx, span := tracer.Start(ctx, "mcptool.ComparePlayers")
	defer span.End()

	first, second := strings.TrimSpace(args.Player1), strings.TrimSpace(args.Player2)
	if first == "" || second == "" {
		return toolError(fmt.Errorf("player1 and player2 are required")), nil, nil
	}

	result, err := t.valuation.Compare(ctx, first, second)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolMarshal(result)
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
