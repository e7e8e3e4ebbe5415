package intel

import "math"

type Tier string

const (
	TierElite   Tier = "elite"
	TierStrong  Tier = "strong"
	TierAverage Tier = "average"
	TierBelow   Tier = "below"
	TierPoor    Tier = "poor"
)

// PercentileRank is the share of population strictly below value, on a 0-100
// scale. Ties are not averaged. When higherIsBetter is false the rank is
// inverted. ok is false for an empty population.
func PercentileRank(value float64, population []float64, higherIsBetter bool) (int, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	n, below := 0, 0
	for _, v := range population {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n++
		if v < value {
			below++
		}
	}
	if n == 0 {
		return 0, false
	}

	pct := int(math.RoundToEven(float64(below) / float64(n) * 100))
	if !higherIsBetter {
		pct = 100 - pct
	}
	return clamp(pct, 0, 100), true
}

func TierFor(pct int) Tier {
	switch {
	case pct >= 90:
		return TierElite
	case pct >= 70:
		return TierStrong
	case pct >= 40:
		return TierAverage
	case pct >= 20:
		return TierBelow
	default:
		return TierPoor
	}
}

// rank is PercentileRank over an optional value.
func rank(value *float64, population []float64, higherIsBetter bool) *int {
	if value == nil {
		return nil
	}
	pct, ok := PercentileRank(*value, population, higherIsBetter)
	if !ok {
		return nil
	}
	return &pct
}

func tierOf(pct *int) *Tier {
	if pct == nil {
		return nil
	}
	t := TierFor(*pct)
	return &t
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
