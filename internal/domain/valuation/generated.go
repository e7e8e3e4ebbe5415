package valuation

import "math"

// GeneratedEntry is one row of the exported rankings file.
type GeneratedEntry struct {
	Name    string  `json:"name"`
	Team    string  `json:"team"`
	Pos     string  `json:"pos"`
	ZTotal  float64 `json:"z_total"`
	ZPosAdj float64 `json:"z_pos_adj"`
	ZFinal  float64 `json:"z_final"`
}

// Generated is the exported rankings file body.
type Generated struct {
	Hitters  []GeneratedEntry `json:"hitters"`
	Pitchers []GeneratedEntry `json:"pitchers"`
}

// Generate orders both pools by ZFinal and rounds every score to two places.
func Generate(v Valuations) Generated {
	return Generated{
		Hitters:  generatedEntries(v.Hitters),
		Pitchers: generatedEntries(v.Pitchers),
	}
}

func generatedEntries(players []Player) []GeneratedEntry {
	out := make([]GeneratedEntry, 0, len(players))
	for _, p := range SortByFinal(players) {
		out = append(out, GeneratedEntry{
			Name:    p.Name,
			Team:    p.Team,
			Pos:     p.Pos,
			ZTotal:  Round(p.ZTotal, 2),
			ZPosAdj: Round(p.ZPosAdj, 2),
			ZFinal:  Round(p.ZFinal, 2),
		})
	}
	return out
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
