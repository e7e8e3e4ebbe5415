package valuation

import (
	"sort"
	"strings"
)

const (
	TypeBatter  = "B"
	TypePitcher = "P"
)

// Source names where a valuation set came from.
type Source string

const (
	SourceCSV   Source = "csv"
	SourceJSON  Source = "json"
	SourceMixed Source = "mixed"
)

// ResolveSource reports csv when both pools came from projections, json when
// neither did, mixed otherwise.
func ResolveSource(hittersFromCSV, pitchersFromCSV bool) Source {
	switch {
	case hittersFromCSV && pitchersFromCSV:
		return SourceCSV
	case hittersFromCSV || pitchersFromCSV:
		return SourceMixed
	default:
		return SourceJSON
	}
}

// Player is one valued row. Stats holds raw per-category values including
// the playing-time column; Z holds one score per counted category.
type Player struct {
	Name    string             `json:"name"`
	Team    string             `json:"team"`
	Pos     string             `json:"pos"`
	Type    string             `json:"type,omitempty"`
	Stats   map[string]float64 `json:"raw_stats"`
	Z       map[string]float64 `json:"z_scores"`
	ZTotal  float64            `json:"z_total"`
	ZPosAdj float64            `json:"z_pos_adj"`
	ZFinal  float64            `json:"z_final"`
}

func (p Player) Stat(name string) float64 {
	return p.Stats[name]
}

func (p Player) clone() Player {
	out := p
	out.Stats = make(map[string]float64, len(p.Stats))
	for k, v := range p.Stats {
		out.Stats[k] = v
	}
	out.Z = make(map[string]float64, len(p.Z))
	for k, v := range p.Z {
		out.Z[k] = v
	}
	return out
}

// Valuations is one full computation over both pools.
type Valuations struct {
	Hitters  []Player `json:"hitters"`
	Pitchers []Player `json:"pitchers"`
	Source   Source   `json:"source"`
}

// SortByFinal returns a copy ordered by ZFinal, highest first.
func SortByFinal(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZFinal > out[j].ZFinal })
	return out
}

// LookupPlayer matches name case-insensitively as a substring of every
// hitter then pitcher name. Matches are tagged B or P.
func LookupPlayer(name string, hitters, pitchers []Player) []Player {
	needle := strings.ToLower(strings.TrimSpace(name))
	out := make([]Player, 0)
	collect := func(pool []Player, playerType string) {
		for _, p := range pool {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				match := p.clone()
				match.Type = playerType
				out = append(out, match)
			}
		}
	}
	collect(hitters, TypeBatter)
	collect(pitchers, TypePitcher)
	return out
}
