package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/playerid"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/resilience"
)

// IdentityService resolves display names to MLB person ids. The persisted
// table is loaded once; a miss triggers a bulk season load until one succeeds,
// then a name search. Failures resolve to "unknown", never to an error.
type IdentityService struct {
	repo   playerid.Repository
	mlb    MLBProvider
	season int
	now    func() time.Time
	logger *logging.Logger

	loadOnce   sync.Once
	populateMu sync.Mutex
	populated  bool
	mu         sync.RWMutex
	ids        map[string]int64
	flight     resilience.SingleFlight[int64]
}

func NewIdentityService(repo playerid.Repository, mlb MLBProvider, season int, logger *logging.Logger) *IdentityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IdentityService{
		repo:   repo,
		mlb:    mlb,
		season: season,
		now:    time.Now,
		logger: logger,
		ids:    make(map[string]int64),
	}
}

// ResolveMLBID returns the MLB id for name, or false when it cannot be found.
func (s *IdentityService) ResolveMLBID(ctx context.Context, name string) (int64, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.ResolveMLBID")
	defer span.End()

	key := playerid.Key(name)
	if key == "" {
		return 0, false
	}

	s.ensureLoaded(ctx)
	if id, ok := s.lookup(key); ok {
		return id, true
	}

	s.ensurePopulated(ctx)
	if id, ok := s.lookup(key); ok {
		return id, true
	}

	return s.search(ctx, key, name)
}

// KnownMLBID answers from the id table alone, loading the season roster on
// the first miss like ResolveMLBID but never running a name search.
func (s *IdentityService) KnownMLBID(ctx context.Context, name string) (int64, bool) {
	key := playerid.Key(name)
	if key == "" {
		return 0, false
	}
	s.ensureLoaded(ctx)
	if id, ok := s.lookup(key); ok {
		return id, true
	}
	s.ensurePopulated(ctx)
	return s.lookup(key)
}

// ResolveMany resolves every non-empty name, keyed by the name as given.
// Names that cannot be resolved are left out.
func (s *IdentityService) ResolveMany(ctx context.Context, names []string) map[string]int64 {
	out := make(map[string]int64, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if id, ok := s.ResolveMLBID(ctx, name); ok {
			out[name] = id
		}
	}
	return out
}

func (s *IdentityService) Identify(ctx context.Context, name string) playerid.Identity {
	identity := playerid.Identity{
		DisplayName:    name,
		NormalizedName: playerid.Key(name),
	}
	if id, ok := s.ResolveMLBID(ctx, name); ok {
		identity.MLBID = &id
	}
	return identity
}

func (s *IdentityService) ensureLoaded(ctx context.Context) {
	s.loadOnce.Do(func() {
		stored, err := s.repo.Load(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "load mlb id table failed", "error", err)
			return
		}
		s.mu.Lock()
		for key, id := range stored {
			if _, exists := s.ids[key]; !exists && id > 0 {
				s.ids[key] = id
			}
		}
		s.mu.Unlock()
	})
}

// ensurePopulated runs the bulk season load at most once successfully; a
// failed load is retried on the next miss.
func (s *IdentityService) ensurePopulated(ctx context.Context) {
	s.populateMu.Lock()
	defer s.populateMu.Unlock()
	if s.populated {
		return
	}
	s.populated = s.populate(ctx)
}

func (s *IdentityService) populate(ctx context.Context) bool {
	year := seasonYear(s.season, s.now())
	people, err := s.mlb.SeasonPlayers(ctx, year)
	if err != nil {
		s.logger.WarnContext(ctx, "populate mlb id table failed", "season", year, "error", err)
		return false
	}

	added := make(map[string]int64, len(people))
	for _, person := range people {
		key := playerid.Key(person.FullName)
		if key == "" || person.ID <= 0 {
			continue
		}
		if s.store(key, person.ID) == person.ID {
			added[key] = person.ID
		}
	}
	s.persist(ctx, added)
	s.logger.InfoContext(ctx, "populated mlb id table", "season", year, "players", len(added))
	return true
}

func (s *IdentityService) search(ctx context.Context, key, name string) (int64, bool) {
	id, err, _ := s.flight.Do("search:"+key, func() (int64, error) {
		people, err := s.mlb.SearchPeople(ctx, name)
		if err != nil {
			return 0, err
		}
		for _, person := range people {
			if person.ID > 0 {
				id := s.store(key, person.ID)
				s.persist(ctx, map[string]int64{key: id})
				return id, nil
			}
		}
		return 0, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "mlb player search failed", "name", name, "error", err)
		return 0, false
	}
	return id, id > 0
}

func (s *IdentityService) lookup(key string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ids[key]
	return id, ok
}

// store keeps the first id seen for key and returns the id now held.
func (s *IdentityService) store(key string, id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.ids[key]; ok {
		return existing
	}
	s.ids[key] = id
	return id
}

func (s *IdentityService) persist(ctx context.Context, ids map[string]int64) {
	if len(ids) == 0 {
		return
	}
	if err := s.repo.Save(ctx, ids); err != nil {
		s.logger.WarnContext(ctx, "persist mlb id table failed", "names", len(ids), "error", err)
	}
}

func seasonYear(configured int, now time.Time) int {
	if configured > 0 {
		return configured
	}
	return now.Year()
}
