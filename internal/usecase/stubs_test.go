package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/leaderboard"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
)

var errStubUnavailable = errors.New("stub source unavailable")

func floatPtr(v float64) *float64 {
	return &v
}

func expectedBoard(names ...string) *intel.ExpectedBoard {
	entries := make([]leaderboard.Entry[intel.ExpectedRecord], 0, len(names))
	for i, name := range names {
		entries = append(entries, leaderboard.Entry[intel.ExpectedRecord]{
			Key:      name,
			PlayerID: int64(1000 + i),
			Record: intel.ExpectedRecord{
				Name:  name,
				XWOBA: floatPtr(0.300 + float64(i)*0.03),
				WOBA:  floatPtr(0.300),
				PA:    floatPtr(400),
			},
		})
	}
	return leaderboard.NewBoard(entries)
}

type stubStatcast struct {
	batters  *intel.ExpectedBoard
	pitchers *intel.ExpectedBoard
	err      error
	panicOn  string
	calls    atomic.Int32
}

func (s *stubStatcast) Expected(_ context.Context, playerType intel.PlayerType, _ int) (*intel.ExpectedBoard, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if playerType == intel.Pitcher {
		return s.pitchers, nil
	}
	return s.batters, nil
}

func (s *stubStatcast) Boards(ctx context.Context, playerType intel.PlayerType, year int) (intel.StatcastBoards, error) {
	if s.panicOn != "" {
		panic(s.panicOn)
	}
	expected, err := s.Expected(ctx, playerType, year)
	if err != nil {
		return intel.StatcastBoards{}, err
	}
	return intel.StatcastBoards{Expected: expected}, nil
}

type stubDiscipline struct {
	index *intel.DisciplineIndex
	err   error
	calls atomic.Int32
}

func (s *stubDiscipline) Discipline(context.Context, intel.PlayerType, int) (*intel.DisciplineIndex, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.index, nil
}

type stubSocial struct {
	hot    []intel.Post
	search []intel.Post
	err    error
	calls  atomic.Int32
}

func (s *stubSocial) Hot(context.Context) ([]intel.Post, error) {
	s.calls.Add(1)
	return s.hot, s.err
}

func (s *stubSocial) Search(context.Context, string) ([]intel.Post, error) {
	return s.search, s.err
}

type stubMLB struct {
	season       []MLBPerson
	seasonErr    error
	seasonFails  int32
	searchResult []MLBPerson
	searchErr    error
	person       MLBPerson
	games        []intel.GameLine
	transactions []intel.Transaction
	teams        []MLBTeam
	err          error

	seasonCalls atomic.Int32
	searchCalls atomic.Int32
}

func (s *stubMLB) SeasonPlayers(context.Context, int) ([]MLBPerson, error) {
	if s.seasonCalls.Add(1) <= s.seasonFails {
		return nil, errStubUnavailable
	}
	return s.season, s.seasonErr
}

func (s *stubMLB) SearchPeople(context.Context, string) ([]MLBPerson, error) {
	s.searchCalls.Add(1)
	return s.searchResult, s.searchErr
}

func (s *stubMLB) Person(context.Context, int64) (MLBPerson, bool, error) {
	return s.person, s.person.ID > 0, s.err
}

func (s *stubMLB) GameLog(context.Context, int64, intel.PlayerType, int, time.Time, time.Time) ([]intel.GameLine, error) {
	return s.games, s.err
}

func (s *stubMLB) Transactions(context.Context, time.Time, time.Time) ([]intel.Transaction, error) {
	return s.transactions, s.err
}

func (s *stubMLB) Teams(context.Context, int) ([]MLBTeam, error) {
	return s.teams, s.err
}

func (s *stubMLB) Schedule(context.Context, time.Time) ([]MLBGame, error) {
	return nil, s.err
}

// stubIDs resolves from a fixed table.
type stubIDs map[string]int64

func (s stubIDs) ResolveMLBID(_ context.Context, name string) (int64, bool) {
	id, ok := s[name]
	return id, ok
}

func (s stubIDs) KnownMLBID(ctx context.Context, name string) (int64, bool) {
	return s.ResolveMLBID(ctx, name)
}

type stubProjections struct {
	hitters  []valuation.Record
	pitchers []valuation.Record
	curated  *valuation.Rankings
	written  *valuation.Generated
	writeErr error
	loadErr  error
}

func (s *stubProjections) Hitters(context.Context) ([]valuation.Record, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.hitters, s.hitters != nil, nil
}

func (s *stubProjections) Pitchers(context.Context) ([]valuation.Record, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.pitchers, s.pitchers != nil, nil
}

func (s *stubProjections) Rankings(context.Context) (valuation.Rankings, bool, error) {
	if s.curated == nil {
		return valuation.Rankings{}, false, nil
	}
	return *s.curated, true, nil
}

func (s *stubProjections) WriteGenerated(_ context.Context, generated valuation.Generated) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = &generated
	return nil
}

type stubBatchIntel struct {
	calls [][]string
	err   error
}

func (s *stubBatchIntel) BatchIntel(_ context.Context, names []string, _ []intel.Section) (map[string]intel.Packet, error) {
	s.calls = append(s.calls, names)
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]intel.Packet, len(names))
	for _, name := range names {
		out[name] = intel.Packet{Name: name}
	}
	return out, nil
}
