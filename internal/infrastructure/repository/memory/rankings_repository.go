package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
)

// RankingsRepository keeps generated snapshots for the lifetime of the process.
type RankingsRepository struct {
	mu     sync.RWMutex
	items  map[int64]rankings.Snapshot
	orders []int64
	nextID int64
}

func NewRankingsRepository() *RankingsRepository {
	return &RankingsRepository{
		items:  make(map[int64]rankings.Snapshot),
		orders: make([]int64, 0),
	}
}

func (r *RankingsRepository) Save(_ context.Context, snapshot rankings.Snapshot) (rankings.Snapshot, error) {
	if err := snapshot.Validate(); err != nil {
		return rankings.Snapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	snapshot.ID = r.nextID
	snapshot.Hitters = cloneEntries(snapshot.Hitters)
	snapshot.Pitchers = cloneEntries(snapshot.Pitchers)
	r.items[snapshot.ID] = snapshot
	r.orders = append(r.orders, snapshot.ID)

	return snapshot, nil
}

// Latest returns the snapshot with the newest GeneratedAt; ties go to the
// most recently saved.
func (r *RankingsRepository) Latest(_ context.Context) (rankings.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.orders) == 0 {
		return rankings.Snapshot{}, false, nil
	}

	latest := r.items[r.orders[0]]
	for _, id := range r.orders[1:] {
		item := r.items[id]
		if !item.GeneratedAt.Before(latest.GeneratedAt) {
			latest = item
		}
	}

	latest.Hitters = cloneEntries(latest.Hitters)
	latest.Pitchers = cloneEntries(latest.Pitchers)
	return latest, true, nil
}

func cloneEntries(entries []rankings.Entry) []rankings.Entry {
	out := make([]rankings.Entry, len(entries))
	copy(out, entries)
	return out
}
