package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestProjectionRepository_MissingFiles(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectionRepository(t.TempDir(), 2026)

	if _, found, err := repo.Hitters(ctx); err != nil || found {
		t.Fatalf("expected missing hitters, found=%v err=%v", found, err)
	}
	if _, found, err := repo.Pitchers(ctx); err != nil || found {
		t.Fatalf("expected missing pitchers, found=%v err=%v", found, err)
	}
	if _, found, err := repo.Rankings(ctx); err != nil || found {
		t.Fatalf("expected missing rankings, found=%v err=%v", found, err)
	}
}

func TestProjectionRepository_HittersTrimsHeaders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, hitterProjectionsFile, " Name ,Team, PA ,HR\nAaron Judge,NYY,650,50\n")

	records, found, err := NewProjectionRepository(dir, 2026).Hitters(context.Background())
	if err != nil || !found {
		t.Fatalf("expected hitters, found=%v err=%v", found, err)
	}
	if len(records) != 1 || records[0]["Name"] != "Aaron Judge" || records[0]["PA"] != "650" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestProjectionRepository_RankingsSkipsNonListTiers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player-rankings-2026.json", `{
  "hitters_by_tier": {
    "tier_1": [{"name": "Aaron Judge", "team": "NYY", "value": 98, "obp": 0.41}],
    "notes": "hand entered"
  },
  "pitchers_by_tier": {
    "closers": [{"name": "Emmanuel Clase", "sv_proj": 40}]
  }
}`)

	repo := NewProjectionRepository(dir, 2026)
	got, found, err := repo.Rankings(context.Background())
	if err != nil || !found {
		t.Fatalf("expected rankings, found=%v err=%v", found, err)
	}
	if _, ok := got.HittersByTier["notes"]; ok {
		t.Fatalf("non-list tier should be skipped")
	}
	tier := got.HittersByTier["tier_1"]
	if len(tier) != 1 || tier[0].Value == nil || *tier[0].Value != 98 || tier[0].OBP != 0.41 {
		t.Fatalf("unexpected hitter tier: %+v", tier)
	}
	closers := got.PitchersByTier["closers"]
	if len(closers) != 1 || closers[0].Value != nil || closers[0].SvProj != 40 {
		t.Fatalf("unexpected closers: %+v", closers)
	}
}

func TestProjectionRepository_RankingsFileFollowsYear(t *testing.T) {
	repo := NewProjectionRepository("/data", 2027)
	if got := repo.RankingsFile(); got != filepath.Join("/data", "player-rankings-2027.json") {
		t.Fatalf("unexpected rankings file: %s", got)
	}
}

func TestProjectionRepository_WriteGenerated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	repo := NewProjectionRepository(dir, 2026)

	err := repo.WriteGenerated(context.Background(), valuation.Generated{
		Hitters:  []valuation.GeneratedEntry{{Name: "Aaron Judge", Team: "NYY", Pos: "OF", ZTotal: 4.1, ZFinal: 4.1}},
		Pitchers: []valuation.GeneratedEntry{},
	})
	if err != nil {
		t.Fatalf("write generated: %v", err)
	}

	var got valuation.Generated
	found, err := readJSON(repo.GeneratedFile(), &got)
	if err != nil || !found {
		t.Fatalf("read back: found=%v err=%v", found, err)
	}
	if len(got.Hitters) != 1 || got.Hitters[0].ZFinal != 4.1 || got.Pitchers == nil {
		t.Fatalf("unexpected generated file: %+v", got)
	}

	raw, err := os.ReadFile(repo.GeneratedFile())
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if len(raw) < 3 || raw[1] != '\n' || raw[2] != ' ' {
		t.Fatalf("expected indented output, got=%q", raw)
	}
}
