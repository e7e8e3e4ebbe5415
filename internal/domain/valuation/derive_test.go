package valuation

import (
	"math"
	"testing"
)

func TestDeriveHitter(t *testing.T) {
	t.Parallel()

	p := DeriveHitter(Record{
		"Name": "Juan Soto", "Team": "NYM", "POS": "OF", "PA": "690",
		"R": "120", "H": "165", "2B": "30", "3B": "2", "HR": "38",
		"RBI": "105", "SO": "120", "K": "999", "SB": "8", "CS": "3",
		"AVG": ".285", "OBP": ".420",
	})

	if p.Pos != "OF" || p.Name != "Juan Soto" {
		t.Fatalf("unexpected identity: %+v", p)
	}
	want := map[string]float64{
		"K":   120,
		"TB":  165 + 30 + 2*2 + 3*38,
		"XBH": 30 + 2 + 38,
		"NSB": 5,
		"PA":  690,
	}
	for k, v := range want {
		if got := p.Stat(k); got != v {
			t.Fatalf("stat %s got=%v want=%v", k, got, v)
		}
	}
}

func TestDerivePitcher(t *testing.T) {
	t.Parallel()

	starter := DerivePitcher(Record{"Name": "Ace", "GS": "30", "G": "31", "IP": "190", "ERA": "3.10", "SO": "210", "SV": "0"})
	if starter.Pos != "SP" {
		t.Fatalf("expected SP from starts share, got %s", starter.Pos)
	}
	if starter.Stat("K") != 210 {
		t.Fatalf("expected K from SO fallback, got %v", starter.Stat("K"))
	}
	if want := math.Round(3.10 * 190 / 9); starter.Stat("ER") != want {
		t.Fatalf("expected derived ER, got %v want %v", starter.Stat("ER"), want)
	}

	closer := DerivePitcher(Record{"Name": "Closer", "GS": "0", "G": "65", "IP": "65", "SV": "35", "ER": "20"})
	if closer.Pos != "RP" || closer.Stat("NSV") != 35 || closer.Stat("ER") != 20 {
		t.Fatalf("unexpected reliever: %+v", closer)
	}

	listed := DerivePitcher(Record{"Name": "Swing", "Pos": "SP,RP", "GS": "0"})
	if listed.Pos != "SP,RP" {
		t.Fatalf("explicit position must win, got %s", listed.Pos)
	}
}

func TestFromRankings(t *testing.T) {
	t.Parallel()

	v := func(f float64) *float64 { return &f }
	hitters, pitchers := FromRankings(Rankings{
		HittersByTier: map[string][]RankedPlayer{
			"tier_1": {{Name: "A", Value: v(90)}, {Name: "B", Value: v(70)}},
			"tier_2": {{Name: "NoValue"}, {Value: v(10)}},
		},
		PitchersByTier: map[string][]RankedPlayer{
			"aces":    {{Name: "Ace", Value: v(80)}},
			"closers": {{Name: "Closer"}},
		},
	}, DefaultPositionBonus())

	if len(hitters) != 2 {
		t.Fatalf("hitters without name or value must be skipped, got %d", len(hitters))
	}
	if !approx(hitters[0].ZTotal, 1) || !approx(hitters[1].ZTotal, -1) {
		t.Fatalf("unexpected pseudo z: %v %v", hitters[0].ZTotal, hitters[1].ZTotal)
	}

	if len(pitchers) != 2 {
		t.Fatalf("unexpected pitchers: %+v", pitchers)
	}
	var closer Player
	for _, p := range pitchers {
		if p.Name == "Closer" {
			closer = p
		}
	}
	if closer.Pos != "RP" || closer.Stat("Value") != 50 || closer.ZPosAdj != 0.5 {
		t.Fatalf("unexpected closer: %+v", closer)
	}
	if !approx(closer.ZFinal, closer.ZTotal+0.5) {
		t.Fatalf("final must include bonus: %+v", closer)
	}
}

func TestResolveSource(t *testing.T) {
	t.Parallel()

	if ResolveSource(true, true) != SourceCSV || ResolveSource(true, false) != SourceMixed ||
		ResolveSource(false, true) != SourceMixed || ResolveSource(false, false) != SourceJSON {
		t.Fatalf("unexpected source resolution")
	}
}

func TestLookupPlayer(t *testing.T) {
	t.Parallel()

	hitters := []Player{{Name: "Will Smith"}, {Name: "Juan Soto"}}
	pitchers := []Player{{Name: "Will Smith"}}

	matches := LookupPlayer("will SMITH", hitters, pitchers)
	if len(matches) != 2 || matches[0].Type != TypeBatter || matches[1].Type != TypePitcher {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if hitters[0].Type != "" {
		t.Fatalf("lookup must not tag the source pool")
	}
	if got := LookupPlayer("nobody", hitters, pitchers); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSortByFinal(t *testing.T) {
	t.Parallel()

	sorted := SortByFinal([]Player{{Name: "a", ZFinal: 1}, {Name: "b", ZFinal: 3}, {Name: "c", ZFinal: 2}})
	if sorted[0].Name != "b" || sorted[2].Name != "a" {
		t.Fatalf("unexpected order: %+v", sorted)
	}
}
