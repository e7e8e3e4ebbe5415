package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
	basecache "github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
)

const latestRankingsKey = "rankings:latest"

// RankingsRepository caches Latest in front of another repository and drops
// the cached value whenever a snapshot is saved.
type RankingsRepository struct {
	next  rankings.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewRankingsRepository(next rankings.Repository, cache *basecache.Store, ttl time.Duration) *RankingsRepository {
	return &RankingsRepository{next: next, cache: cache, ttl: ttl}
}

func (r *RankingsRepository) Save(ctx context.Context, snapshot rankings.Snapshot) (rankings.Snapshot, error) {
	saved, err := r.next.Save(ctx, snapshot)
	if err != nil {
		return rankings.Snapshot{}, err
	}
	r.cache.Delete(ctx, latestRankingsKey)
	return saved, nil
}

func (r *RankingsRepository) Latest(ctx context.Context) (rankings.Snapshot, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, latestRankingsKey, r.ttl, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Latest(ctx)
		if err != nil {
			return nil, err
		}
		return cachedSnapshot{value: item, exists: exists}, nil
	})
	if err != nil {
		return rankings.Snapshot{}, false, err
	}

	cached, _ := v.(cachedSnapshot)
	snapshot := cached.value
	snapshot.Hitters = append([]rankings.Entry(nil), snapshot.Hitters...)
	snapshot.Pitchers = append([]rankings.Entry(nil), snapshot.Pitchers...)
	return snapshot, cached.exists, nil
}

type cachedSnapshot struct {
	value  rankings.Snapshot
	exists bool
}
