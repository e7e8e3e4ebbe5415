package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/metrics"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBatchWorkers = 8
	trendWindowDays     = 30
)

// IDResolver maps a display name to an MLB person id. KnownMLBID consults
// only the id table and never searches.
type IDResolver interface {
	ResolveMLBID(ctx context.Context, name string) (int64, bool)
	KnownMLBID(ctx context.Context, name string) (int64, bool)
}

type IntelConfig struct {
	Season       int
	BatchWorkers int
}

// IntelService builds per-player intelligence packets and the feed-style
// reports (regression candidates, community buzz, roster moves).
type IntelService struct {
	ids        IDResolver
	statcast   StatcastProvider
	discipline DisciplineProvider
	social     SocialFeed
	mlb        MLBProvider
	metrics    *metrics.Metrics
	logger     *logging.Logger
	season     int
	workers    int
	now        func() time.Time
}

func NewIntelService(
	ids IDResolver,
	statcast StatcastProvider,
	discipline DisciplineProvider,
	social SocialFeed,
	mlb MLBProvider,
	cfg IntelConfig,
	m *metrics.Metrics,
	logger *logging.Logger,
) *IntelService {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.BatchWorkers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	return &IntelService{
		ids:        ids,
		statcast:   statcast,
		discipline: discipline,
		social:     social,
		mlb:        mlb,
		metrics:    m,
		logger:     logger,
		season:     cfg.Season,
		workers:    workers,
		now:        time.Now,
	}
}

func (s *IntelService) year() int {
	return seasonYear(s.season, s.now())
}

// PlayerIntel assembles the requested sections for one player. Sections run
// concurrently; a failing or panicking section carries its own error and
// never affects the others.
func (s *IntelService) PlayerIntel(ctx context.Context, name string, sections []intel.Section) (intel.Packet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntelService.PlayerIntel", attribute.String("player.name", name))
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return intel.Packet{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if len(sections) == 0 {
		sections = intel.AllSections()
	}

	packet := intel.Packet{Name: name}
	mlbID, found := s.ids.ResolveMLBID(ctx, name)
	if found {
		packet.MLBID = &mlbID
	}

	playerType := sync.OnceValue(func() intel.PlayerType {
		return s.detectPlayerType(ctx, name, mlbID)
	})

	var wg conc.WaitGroup
	for _, section := range sections {
		switch section {
		case intel.SectionStatcast:
			wg.Go(func() {
				out := intel.StatcastSection{}
				s.runSection(ctx, name, section, &out.Error, func() error {
					var err error
					out, err = s.statcastSection(ctx, name, mlbID, playerType())
					return err
				})
				packet.Statcast = &out
			})
		case intel.SectionTrends:
			wg.Go(func() {
				out := intel.TrendsSection{}
				s.runSection(ctx, name, section, &out.Error, func() error {
					var err error
					out, err = s.trendsSection(ctx, mlbID, found, playerType())
					return err
				})
				packet.Trends = &out
			})
		case intel.SectionContext:
			wg.Go(func() {
				out := intel.ContextSection{}
				s.runSection(ctx, name, section, &out.Error, func() error {
					posts, err := s.social.Search(ctx, name)
					if err != nil {
						return err
					}
					out = intel.BuildContext(posts)
					return nil
				})
				packet.Context = &out
			})
		case intel.SectionDiscipline:
			wg.Go(func() {
				out := intel.DisciplineSection{}
				s.runSection(ctx, name, section, &out.Error, func() error {
					index, err := s.discipline.Discipline(ctx, playerType(), s.year())
					if err != nil {
						return err
					}
					out = intel.BuildDiscipline(name, index)
					return nil
				})
				packet.Discipline = &out
			})
		}
	}
	wg.Wait()

	return packet, nil
}

// runSection runs fn and records an error or panic on the section.
func (s *IntelService) runSection(ctx context.Context, name string, section intel.Section, errField *string, fn func() error) {
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = fn()
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err == nil {
		return
	}

	*errField = err.Error()
	s.metrics.SectionFailure(string(section))
	s.logger.WarnContext(ctx, "intel section failed", "name", name, "section", string(section), "error", err)
}

func (s *IntelService) statcastSection(ctx context.Context, name string, mlbID int64, playerType intel.PlayerType) (intel.StatcastSection, error) {
	boards, err := s.statcast.Boards(ctx, playerType, s.year())
	if err != nil {
		return intel.StatcastSection{}, err
	}
	return intel.BuildStatcast(name, mlbID, playerType, boards), nil
}

func (s *IntelService) trendsSection(ctx context.Context, mlbID int64, known bool, playerType intel.PlayerType) (intel.TrendsSection, error) {
	now := s.now()
	if !known {
		return intel.BuildTrends(nil, playerType, now), nil
	}
	games, err := s.mlb.GameLog(ctx, mlbID, playerType, s.year(), now.AddDate(0, 0, -trendWindowDays), now)
	if err != nil {
		return intel.TrendsSection{}, err
	}
	return intel.BuildTrends(games, playerType, now), nil
}

// detectPlayerType checks the batter and pitcher expected-stats boards, then
// the player's primary position. Unknown players are treated as batters.
func (s *IntelService) detectPlayerType(ctx context.Context, name string, mlbID int64) intel.PlayerType {
	year := s.year()
	batters, err := s.statcast.Expected(ctx, intel.Batter, year)
	if err != nil {
		s.logger.WarnContext(ctx, "load batter expected stats failed", "error", err)
	}
	pitchers, err := s.statcast.Expected(ctx, intel.Pitcher, year)
	if err != nil {
		s.logger.WarnContext(ctx, "load pitcher expected stats failed", "error", err)
	}
	if playerType, ok := intel.DetectPlayerType(name, mlbID, batters, pitchers); ok {
		return playerType
	}

	if mlbID > 0 {
		person, ok, err := s.mlb.Person(ctx, mlbID)
		if err != nil {
			s.logger.WarnContext(ctx, "lookup primary position failed", "mlb_id", mlbID, "error", err)
		} else if ok {
			return intel.PlayerTypeFromPosition(person.PrimaryPosition)
		}
	}
	return intel.Batter
}

// BatchIntel builds packets for many players on a bounded worker pool. Blank
// and repeated names are skipped. A player whose packet cannot be built gets
// a packet carrying only the error.
func (s *IntelService) BatchIntel(ctx context.Context, names []string, sections []intel.Section) (map[string]intel.Packet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntelService.BatchIntel", attribute.Int("batch.size", len(names)))
	defer span.End()

	if len(sections) == 0 {
		sections = intel.BatchSections()
	}

	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	out := make(map[string]intel.Packet, len(unique))
	if len(unique) == 0 {
		return out, nil
	}
	s.metrics.BatchSize(len(unique))

	pool, err := ants.NewPool(min(s.workers, len(unique)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, name := range unique {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			packet := s.safePlayerIntel(ctx, name, sections)
			mu.Lock()
			out[name] = packet
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit intel task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func (s *IntelService) safePlayerIntel(ctx context.Context, name string, sections []intel.Section) intel.Packet {
	var (
		packet intel.Packet
		err    error
	)
	var catcher panics.Catcher
	catcher.Try(func() {
		packet, err = s.PlayerIntel(ctx, name, sections)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "player intel failed", "name", name, "error", err)
		return intel.Packet{Name: name, Error: err.Error()}
	}
	return packet
}

// Breakouts lists players whose expected wOBA runs ahead of their results.
func (s *IntelService) Breakouts(ctx context.Context, posType string, count int) (intel.Candidates, error) {
	return s.regression(ctx, posType, count, intel.Breakout)
}

// Busts lists players whose results run ahead of their expected wOBA.
func (s *IntelService) Busts(ctx context.Context, posType string, count int) (intel.Candidates, error) {
	return s.regression(ctx, posType, count, intel.Bust)
}

func (s *IntelService) regression(ctx context.Context, posType string, count int, direction intel.Direction) (intel.Candidates, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntelService.regression", attribute.String("pos_type", posType))
	defer span.End()

	playerType, ok := intel.ParsePosType(posType)
	if !ok {
		return intel.Candidates{}, fmt.Errorf("%w: pos_type must be B or P", ErrInvalidInput)
	}

	board, err := s.statcast.Expected(ctx, playerType, s.year())
	if err != nil {
		return intel.Candidates{}, fmt.Errorf("%w: could not fetch savant data: %v", ErrDependencyUnavailable, err)
	}
	if board.Len() == 0 {
		return intel.Candidates{}, fmt.Errorf("%w: could not fetch savant data", ErrDependencyUnavailable)
	}

	return intel.Candidates{
		PosType:    playerType.PosType(),
		Candidates: intel.RegressionCandidates(board, direction, count),
	}, nil
}

// RedditBuzz groups the hot feed by flair.
func (s *IntelService) RedditBuzz(ctx context.Context) intel.Buzz {
	return intel.GroupByFlair(s.hotPosts(ctx))
}

// Trending highlights high-engagement posts in the hot feed.
func (s *IntelService) Trending(ctx context.Context) intel.Trending {
	return intel.TrendingPosts(s.hotPosts(ctx))
}

func (s *IntelService) hotPosts(ctx context.Context) []intel.Post {
	posts, err := s.social.Hot(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch hot posts failed", "error", err)
		return nil
	}
	return posts
}

// Prospects lists call-ups from the last two weeks.
func (s *IntelService) Prospects(ctx context.Context) intel.ProspectReport {
	return intel.CallUps(s.recentTransactions(ctx, intel.ProspectWindowDays))
}

// Transactions lists fantasy-relevant roster moves from the last days days.
func (s *IntelService) Transactions(ctx context.Context, days int) intel.TransactionReport {
	if days <= 0 {
		days = intel.DefaultTransactionDays
	}
	return intel.FantasyRelevant(s.recentTransactions(ctx, days), days)
}

// Injuries lists injured-list moves from the last days days.
func (s *IntelService) Injuries(ctx context.Context, days int) intel.TransactionReport {
	if days <= 0 {
		days = intel.DefaultTransactionDays
	}
	return intel.Injuries(s.recentTransactions(ctx, days), days)
}

func (s *IntelService) recentTransactions(ctx context.Context, days int) []intel.Transaction {
	now := s.now()
	txs, err := s.mlb.Transactions(ctx, now.AddDate(0, 0, -days), now)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch transactions failed", "days", days, "error", err)
		return nil
	}
	return txs
}

func (s *IntelService) Teams(ctx context.Context, season int) ([]MLBTeam, error) {
	if season <= 0 {
		season = s.year()
	}
	teams, err := s.mlb.Teams(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("%w: mlb teams: %v", ErrDependencyUnavailable, err)
	}
	return teams, nil
}

func (s *IntelService) Schedule(ctx context.Context, day time.Time) ([]MLBGame, error) {
	if day.IsZero() {
		day = s.now()
	}
	games, err := s.mlb.Schedule(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: mlb schedule: %v", ErrDependencyUnavailable, err)
	}
	return games, nil
}
