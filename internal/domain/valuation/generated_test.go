package valuation

import "testing"

func TestGenerate_SortsAndRounds(t *testing.T) {
	v := Valuations{
		Hitters: []Player{
			{Name: "Low", ZTotal: 0.111, ZFinal: 0.111},
			{Name: "High", Pos: "SS", ZTotal: 1.234, ZPosAdj: 0.3, ZFinal: 1.534},
		},
		Pitchers: []Player{{Name: "Ace", Pos: "SP", ZTotal: -0.006, ZFinal: -0.006}},
	}

	got := Generate(v)
	if len(got.Hitters) != 2 || got.Hitters[0].Name != "High" {
		t.Fatalf("unexpected hitter order: %+v", got.Hitters)
	}
	if got.Hitters[0].ZFinal != 1.53 || got.Hitters[0].ZTotal != 1.23 || got.Hitters[0].ZPosAdj != 0.3 {
		t.Fatalf("unexpected rounding: %+v", got.Hitters[0])
	}
	if got.Hitters[1].ZFinal != 0.11 {
		t.Fatalf("unexpected rounding: %+v", got.Hitters[1])
	}
	if len(got.Pitchers) != 1 || got.Pitchers[0].ZFinal != -0.01 {
		t.Fatalf("unexpected pitchers: %+v", got.Pitchers)
	}
}

func TestGenerate_EmptyPoolsEncodeAsEmptyLists(t *testing.T) {
	got := Generate(Valuations{})
	if got.Hitters == nil || got.Pitchers == nil {
		t.Fatalf("expected non-nil slices, got=%+v", got)
	}
}
