package valuation

import "strings"

const (
	MinPA = 200
	MinIP = 30
)

// RatioCategory is a rate stat weighted by playing time.
type RatioCategory struct {
	Name          string
	LowerIsBetter bool
}

// CategorySpec describes how one pool is scored.
type CategorySpec struct {
	Categories     []string
	Negative       []string
	Ratio          []RatioCategory
	PlayingTime    string
	MinPlayingTime float64
	PositionBonus  map[string]float64
}

func DefaultPositionBonus() map[string]float64 {
	return map[string]float64{"C": 1.5, "SS": 1.5, "2B": 0.5, "3B": 0.5, "RP": 0.5}
}

func DefaultHitterSpec() CategorySpec {
	return CategorySpec{
		Categories:     []string{"R", "H", "HR", "RBI", "TB", "AVG", "OBP", "XBH", "NSB"},
		Negative:       []string{"K"},
		Ratio:          []RatioCategory{{Name: "AVG"}, {Name: "OBP"}},
		PlayingTime:    "PA",
		MinPlayingTime: MinPA,
		PositionBonus:  DefaultPositionBonus(),
	}
}

func DefaultPitcherSpec() CategorySpec {
	return CategorySpec{
		Categories:     []string{"IP", "W", "K", "HLD", "ERA", "WHIP", "QS", "NSV"},
		Negative:       []string{"L", "ER"},
		Ratio:          []RatioCategory{{Name: "ERA", LowerIsBetter: true}, {Name: "WHIP", LowerIsBetter: true}},
		PlayingTime:    "IP",
		MinPlayingTime: MinIP,
		PositionBonus:  DefaultPositionBonus(),
	}
}

// WithCategories overrides the counted and negative lists when non-empty.
func (s CategorySpec) WithCategories(categories, negative []string) CategorySpec {
	if len(categories) > 0 {
		s.Categories = upperAll(categories)
	}
	if len(negative) > 0 {
		s.Negative = upperAll(negative)
	}
	return s
}

// PositionBonus is the largest bonus among position tokens in pos, which may
// list several eligibilities ("2B,SS", "SP/RP"). Matching is per token so CF
// does not earn the catcher bonus.
func PositionBonus(pos string, table map[string]float64) float64 {
	best := 0.0
	for _, token := range splitPositions(pos) {
		if bonus, ok := table[token]; ok && bonus > best {
			best = bonus
		}
	}
	return best
}

func splitPositions(pos string) []string {
	return strings.FieldsFunc(strings.ToUpper(pos), func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '|' || r == ';'
	})
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
