package mcptool

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIntel struct {
	sections []intel.Section
	names    []string
}

func (s *stubIntel) PlayerIntel(_ context.Context, name string, sections []intel.Section) (intel.Packet, error) {
	s.sections = sections
	return intel.Packet{Name: name}, nil
}

func (s *stubIntel) BatchIntel(_ context.Context, names []string, sections []intel.Section) (map[string]intel.Packet, error) {
	s.names = names
	s.sections = sections
	out := make(map[string]intel.Packet, len(names))
	for _, name := range names {
		out[name] = intel.Packet{Name: name}
	}
	return out, nil
}

type stubValuation struct {
	posType   string
	withIntel bool
	err       error
}

func (s *stubValuation) Rankings(_ context.Context, posType string, _ int, withIntel bool) (usecase.RankingsResult, error) {
	s.posType = posType
	s.withIntel = withIntel
	return usecase.RankingsResult{PosType: posType, Players: []usecase.RankedPlayer{{Rank: 1, Name: "Aaron Judge"}}}, s.err
}

func (s *stubValuation) Compare(_ context.Context, first, second string) (usecase.Comparison, error) {
	if s.err != nil {
		return usecase.Comparison{}, s.err
	}
	return usecase.Comparison{
		Player1: usecase.ComparedPlayer{Name: first},
		Player2: usecase.ComparedPlayer{Name: second},
	}, nil
}

func (s *stubValuation) Value(_ context.Context, name string) (usecase.ValueResult, error) {
	return usecase.ValueResult{Players: []usecase.PlayerValue{{Name: name}}}, s.err
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestPlayerIntel_RequiresName(t *testing.T) {
	tools := NewTools(&stubIntel{}, &stubValuation{}, logging.NewNop())

	res, _, err := tools.PlayerIntel(context.Background(), nil, PlayerIntelArgs{Name: "  "})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "name is required")
}

func TestPlayerIntel_ReturnsPacket(t *testing.T) {
	stub := &stubIntel{}
	tools := NewTools(stub, &stubValuation{}, logging.NewNop())

	res, _, err := tools.PlayerIntel(context.Background(), nil, PlayerIntelArgs{Name: "Aaron Judge", Include: []string{"trends"}})

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"name": "Aaron Judge"`)
	assert.Equal(t, []intel.Section{intel.SectionTrends}, stub.sections)
}

func TestBatchIntel_LimitsAndDefaults(t *testing.T) {
	stub := &stubIntel{}
	tools := NewTools(stub, &stubValuation{}, logging.NewNop())

	res, _, err := tools.BatchIntel(context.Background(), nil, BatchIntelArgs{Names: []string{"Juan Soto", "Aaron Judge"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []intel.Section{intel.SectionStatcast}, stub.sections)

	tooMany := make([]string, maxBatchNames+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("Player %d", i)
	}
	res, _, err = tools.BatchIntel(context.Background(), nil, BatchIntelArgs{Names: tooMany})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRankings_Defaults(t *testing.T) {
	stub := &stubValuation{}
	tools := NewTools(&stubIntel{}, stub, logging.NewNop())

	res, _, err := tools.Rankings(context.Background(), nil, RankingsArgs{})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "B", stub.posType)
	assert.True(t, stub.withIntel)

	off := false
	_, _, err = tools.Rankings(context.Background(), nil, RankingsArgs{PosType: "p", Intel: &off})
	require.NoError(t, err)
	assert.Equal(t, "P", stub.posType)
	assert.False(t, stub.withIntel)

	res, _, err = tools.Rankings(context.Background(), nil, RankingsArgs{PosType: "X"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestComparePlayers_SurfacesErrors(t *testing.T) {
	stub := &stubValuation{err: fmt.Errorf("%w: Nobody", usecase.ErrNotFound)}
	tools := NewTools(&stubIntel{}, stub, logging.NewNop())

	res, _, err := tools.ComparePlayers(context.Background(), nil, ComparePlayersArgs{Player1: "Aaron Judge", Player2: "Nobody"})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not found")
}

func TestServer_ListsAndCallsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer(NewTools(&stubIntel{}, &stubValuation{}, logging.NewNop()), "test")

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	listed, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(listed.Tools))
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"player_intel", "batch_intel", "rankings", "player_value", "compare_players"}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "player_value",
		Arguments: map[string]any{"name": "Witt"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.True(t, strings.Contains(resultText(t, res), "Witt"))
}
