package intel

import "github.com/riskibarqy/fantasy-baseball/internal/domain/leaderboard"

const noteNotInFangraphs = "Player not found in FanGraphs data"

// DisciplineRecord holds plate-discipline rates as published by FanGraphs.
type DisciplineRecord struct {
	BBRate      *float64
	KRate       *float64
	OSwingPct   *float64
	ZContactPct *float64
	SwStrPct    *float64
}

type DisciplineIndex = leaderboard.NameIndex[DisciplineRecord]

type DisciplineSection struct {
	BBRate      *float64 `json:"bb_rate,omitempty"`
	KRate       *float64 `json:"k_rate,omitempty"`
	OSwingPct   *float64 `json:"o_swing_pct,omitempty"`
	ZContactPct *float64 `json:"z_contact_pct,omitempty"`
	SwStrPct    *float64 `json:"swstr_pct,omitempty"`
	Note        string   `json:"note,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func BuildDiscipline(name string, index *DisciplineIndex) DisciplineSection {
	row, ok := index.Find(name)
	if !ok {
		return DisciplineSection{Note: noteNotInFangraphs}
	}
	return DisciplineSection{
		BBRate:      row.BBRate,
		KRate:       row.KRate,
		OSwingPct:   row.OSwingPct,
		ZContactPct: row.ZContactPct,
		SwStrPct:    row.SwStrPct,
	}
}
