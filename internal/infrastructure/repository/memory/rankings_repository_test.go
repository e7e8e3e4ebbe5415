package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
)

func TestRankingsRepository_LatestEmpty(t *testing.T) {
	repo := NewRankingsRepository()
	_, ok, err := repo.Latest(context.Background())
	if err != nil || ok {
		t.Fatalf("expected no snapshot, got ok=%v err=%v", ok, err)
	}
}

func TestRankingsRepository_SaveAssignsIDAndLatestWins(t *testing.T) {
	ctx := context.Background()
	repo := NewRankingsRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := repo.Save(ctx, rankings.Snapshot{
		Source:      "json",
		GeneratedAt: base,
		Hitters:     []rankings.Entry{{Rank: 1, Name: "Juan Soto"}},
	})
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := repo.Save(ctx, rankings.Snapshot{
		Source:      "csv",
		GeneratedAt: base.Add(time.Hour),
		Hitters:     []rankings.Entry{{Rank: 1, Name: "Aaron Judge"}},
	})
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("unexpected ids first=%d second=%d", first.ID, second.ID)
	}

	latest, ok, err := repo.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("expected latest snapshot, ok=%v err=%v", ok, err)
	}
	if latest.ID != second.ID || latest.Hitters[0].Name != "Aaron Judge" {
		t.Fatalf("unexpected latest: %+v", latest)
	}

	latest.Hitters[0].Name = "mutated"
	again, _, _ := repo.Latest(ctx)
	if again.Hitters[0].Name != "Aaron Judge" {
		t.Fatalf("stored snapshot was mutated through returned copy")
	}
}

func TestRankingsRepository_SaveRejectsInvalid(t *testing.T) {
	repo := NewRankingsRepository()
	if _, err := repo.Save(context.Background(), rankings.Snapshot{}); err == nil {
		t.Fatalf("expected validation error")
	}
}
