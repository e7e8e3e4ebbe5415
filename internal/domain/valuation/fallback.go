package valuation

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

const defaultPitcherValue = 50

var relieverTiers = map[string]struct{}{
	"holds_specialists": {},
	"closers":           {},
}

// RankedPlayer is one entry of the hand-curated rankings file.
type RankedPlayer struct {
	Name    string   `json:"name"`
	Team    string   `json:"team"`
	Value   *float64 `json:"value"`
	OBP     float64  `json:"obp"`
	KPct    float64  `json:"k_pct"`
	ERA     float64  `json:"era"`
	WHIP    float64  `json:"whip"`
	QSProj  float64  `json:"qs_proj"`
	HldProj float64  `json:"hld_proj"`
	SvProj  float64  `json:"sv_proj"`
}

// Rankings is the curated list grouped by tier name.
type Rankings struct {
	HittersByTier  map[string][]RankedPlayer
	PitchersByTier map[string][]RankedPlayer
}

// FromRankings turns the curated list into valued players. The single
// "value" field is normalized into a pseudo z-score so the output has the
// same shape as a projection-based computation. Hitters without a value are
// skipped; pitchers default to 50.
func FromRankings(r Rankings, bonus map[string]float64) (hitters, pitchers []Player) {
	for _, tier := range sortedTiers(r.HittersByTier) {
		for _, p := range r.HittersByTier[tier] {
			if p.Name == "" || p.Value == nil {
				continue
			}
			hitters = append(hitters, Player{
				Name:  p.Name,
				Team:  p.Team,
				Stats: map[string]float64{"Value": *p.Value, "OBP": p.OBP, "K_pct": p.KPct},
			})
		}
	}

	for _, tier := range sortedTiers(r.PitchersByTier) {
		pos := "SP"
		if _, reliever := relieverTiers[tier]; reliever {
			pos = "RP"
		}
		for _, p := range r.PitchersByTier[tier] {
			if p.Name == "" {
				continue
			}
			value := float64(defaultPitcherValue)
			if p.Value != nil {
				value = *p.Value
			}
			pitchers = append(pitchers, Player{
				Name: p.Name,
				Team: p.Team,
				Pos:  pos,
				Stats: map[string]float64{
					"Value": value,
					"ERA":   p.ERA,
					"WHIP":  p.WHIP,
					"QS":    p.QSProj,
					"HLD":   p.HldProj,
					"SV":    p.SvProj,
				},
			})
		}
	}

	return pseudoZ(hitters, bonus), pseudoZ(pitchers, bonus)
}

func pseudoZ(players []Player, bonus map[string]float64) []Player {
	if len(players) == 0 {
		return players
	}
	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = p.Stat("Value")
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	for i := range players {
		players[i].Z = map[string]float64{}
		players[i].ZTotal = zScore(values[i], mean, std, false)
		players[i].ZPosAdj = PositionBonus(players[i].Pos, bonus)
		players[i].ZFinal = players[i].ZTotal + players[i].ZPosAdj
	}
	return players
}

// sortedTiers fixes iteration order; JSON object order is not preserved.
func sortedTiers(tiers map[string][]RankedPlayer) []string {
	keys := make([]string, 0, len(tiers))
	for k := range tiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
