package intel

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestPercentileRank_ThreePlayerScenario(t *testing.T) {
	t.Parallel()

	population := []float64{.350, .300, .250}
	pct, ok := PercentileRank(.300, population, true)
	if !ok {
		t.Fatalf("expected a rank")
	}
	if pct != 33 {
		t.Fatalf("unexpected percentile: got=%d want=33", pct)
	}
	if tier := TierFor(pct); tier != TierBelow {
		t.Fatalf("unexpected tier: got=%s want=%s", tier, TierBelow)
	}
}

func TestPercentileRank_EmptyPopulationIsAbsent(t *testing.T) {
	t.Parallel()

	if _, ok := PercentileRank(1, nil, true); ok {
		t.Fatalf("expected absent rank for empty population")
	}
	if _, ok := PercentileRank(1, []float64{math.NaN()}, true); ok {
		t.Fatalf("expected absent rank when population filters to empty")
	}
	if _, ok := PercentileRank(math.NaN(), []float64{1, 2}, true); ok {
		t.Fatalf("expected absent rank for non-numeric value")
	}
	if rank(nil, []float64{1, 2}, true) != nil {
		t.Fatalf("expected nil rank for missing value")
	}
}

func TestPercentileRank_TiesShareRank(t *testing.T) {
	t.Parallel()

	population := []float64{1, 2, 2, 2, 3}
	pct, _ := PercentileRank(2, population, true)
	if pct != 20 {
		t.Fatalf("ties must count as not strictly below: got=%d want=20", pct)
	}
}

func TestPercentileRank_MonotonicAndBounded(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(60)
		population := make([]float64, n)
		for i := range population {
			population[i] = rng.Float64() * 10
		}

		for _, higherIsBetter := range []bool{true, false} {
			prev := -1
			if !higherIsBetter {
				prev = 101
			}
			for v := -1.0; v <= 11; v += 0.25 {
				pct, ok := PercentileRank(v, population, higherIsBetter)
				if !ok {
					t.Fatalf("expected rank for non-empty population")
				}
				if pct < 0 || pct > 100 {
					t.Fatalf("percentile out of range: %d", pct)
				}
				if higherIsBetter && pct < prev {
					t.Fatalf("rank decreased as value increased: prev=%d got=%d", prev, pct)
				}
				if !higherIsBetter && pct > prev {
					t.Fatalf("inverted rank increased as value increased: prev=%d got=%d", prev, pct)
				}
				prev = pct
			}
		}
	}
}

func TestPercentileRank_DirectionsSumToHundred(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(40)
		population := make([]float64, n)
		for i := range population {
			population[i] = float64(rng.IntN(20))
		}
		value := float64(rng.IntN(22) - 1)

		up, _ := PercentileRank(value, population, true)
		down, _ := PercentileRank(value, population, false)
		if sum := up + down; sum < 99 || sum > 101 {
			t.Fatalf("directions should sum to ~100: up=%d down=%d", up, down)
		}
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pct  int
		want Tier
	}{
		{100, TierElite},
		{90, TierElite},
		{89, TierStrong},
		{70, TierStrong},
		{69, TierAverage},
		{40, TierAverage},
		{39, TierBelow},
		{20, TierBelow},
		{19, TierPoor},
		{0, TierPoor},
	}
	for _, tc := range cases {
		if got := TierFor(tc.pct); got != tc.want {
			t.Fatalf("TierFor(%d) got=%s want=%s", tc.pct, got, tc.want)
		}
	}
}
