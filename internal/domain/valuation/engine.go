package valuation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Compute scores pool against spec. Only rows meeting the playing-time
// threshold are scored and returned; when none qualify every input row is
// returned with zero scores. Input rows are not modified.
func Compute(pool []Player, spec CategorySpec) []Player {
	qualified := make([]Player, 0, len(pool))
	for _, p := range pool {
		if p.Stat(spec.PlayingTime) >= spec.MinPlayingTime {
			qualified = append(qualified, p.clone())
		}
	}
	if len(qualified) == 0 {
		out := make([]Player, 0, len(pool))
		for _, p := range pool {
			zeroed := p.clone()
			zeroed.Z = map[string]float64{}
			zeroed.ZTotal, zeroed.ZPosAdj, zeroed.ZFinal = 0, 0, 0
			out = append(out, zeroed)
		}
		return out
	}

	for i := range qualified {
		qualified[i].Z = make(map[string]float64)
	}

	ratios := make(map[string]RatioCategory, len(spec.Ratio))
	for _, r := range spec.Ratio {
		ratios[r.Name] = r
	}
	negative := make(map[string]struct{}, len(spec.Negative))
	for _, c := range spec.Negative {
		negative[c] = struct{}{}
	}

	// a category in both lists is scored once, as negative
	for _, category := range spec.Categories {
		if _, isRatio := ratios[category]; isRatio {
			continue
		}
		if _, isNegative := negative[category]; isNegative {
			continue
		}
		applyCounting(qualified, category, false)
	}
	for _, category := range spec.Negative {
		applyCounting(qualified, category, true)
	}
	for _, category := range spec.Categories {
		if r, isRatio := ratios[category]; isRatio {
			applyRatio(qualified, r, spec.PlayingTime)
		}
	}

	for i := range qualified {
		total := 0.0
		for _, z := range qualified[i].Z {
			total += z
		}
		qualified[i].ZTotal = total
		qualified[i].ZPosAdj = PositionBonus(qualified[i].Pos, spec.PositionBonus)
		qualified[i].ZFinal = total + qualified[i].ZPosAdj
	}
	return qualified
}

// applyCounting writes z = (x - mean) / std using the population std.
func applyCounting(players []Player, category string, negate bool) {
	values, ok := column(players, category)
	if !ok {
		return
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	for i := range players {
		players[i].Z[category] = zScore(values[i], mean, std, negate)
	}
}

// applyRatio uses a playing-time weighted mean and variance, then scales each
// z by the player's share of average playing time.
func applyRatio(players []Player, ratio RatioCategory, playingTime string) {
	values, ok := column(players, ratio.Name)
	if !ok {
		return
	}
	weights := make([]float64, len(players))
	sumWeights := 0.0
	for i, p := range players {
		weights[i] = p.Stat(playingTime)
		sumWeights += weights[i]
	}
	if sumWeights == 0 {
		for i := range players {
			players[i].Z[ratio.Name] = 0
		}
		return
	}

	mean, std := stat.PopMeanStdDev(values, weights)
	avgWeight := stat.Mean(weights, nil)
	for i := range players {
		z := zScore(values[i], mean, std, ratio.LowerIsBetter)
		if avgWeight > 0 {
			z *= weights[i] / avgWeight
		}
		players[i].Z[ratio.Name] = z
	}
}

// column gathers one stat across players; ok is false when no player has it.
func column(players []Player, category string) ([]float64, bool) {
	values := make([]float64, len(players))
	present := false
	for i, p := range players {
		v, has := p.Stats[category]
		if has {
			present = true
		}
		if math.IsNaN(v) {
			v = 0
		}
		values[i] = v
	}
	return values, present
}

func zScore(value, mean, std float64, negate bool) float64 {
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	z := (value - mean) / std
	if negate {
		z = -z
	}
	return z
}
