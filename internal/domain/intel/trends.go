package intel

import "time"

const noteNoGameLog = "No recent game log data available"

type HotCold string

const (
	StatusHot     HotCold = "hot"
	StatusWarm    HotCold = "warm"
	StatusNeutral HotCold = "neutral"
	StatusCold    HotCold = "cold"
	StatusIce     HotCold = "ice"
)

// GameLine is one game from a player's MLB game log. Date is YYYY-MM-DD and
// may be empty. InningsPitched is in true innings (6.1 in box-score notation
// is 6.333).
type GameLine struct {
	Date           string
	Opponent       string
	AtBats         int
	Hits           int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	BaseOnBalls    int
	StrikeOuts     int
	StolenBases    int
	InningsPitched float64
	EarnedRuns     int
	Wins           int
}

type HittingLine struct {
	AVG   float64 `json:"avg"`
	OBP   float64 `json:"obp"`
	SLG   float64 `json:"slg"`
	OPS   float64 `json:"ops"`
	HR    int     `json:"hr"`
	RBI   int     `json:"rbi"`
	SB    int     `json:"sb"`
	K     int     `json:"k"`
	BB    int     `json:"bb"`
	Games int     `json:"games"`
}

type PitchingLine struct {
	ERA   float64 `json:"era"`
	WHIP  float64 `json:"whip"`
	IP    float64 `json:"ip"`
	K     int     `json:"k"`
	BB    int     `json:"bb"`
	W     int     `json:"w"`
	Games int     `json:"games"`
}

// Window aggregates one rolling window. Exactly one of Hitting or Pitching
// is set.
type Window struct {
	Hitting  *HittingLine  `json:"hitting,omitempty"`
	Pitching *PitchingLine `json:"pitching,omitempty"`
}

type Splits struct {
	Last14 *Window `json:"last_14d,omitempty"`
	Last30 *Window `json:"last_30d,omitempty"`
}

type TrendsSection struct {
	Status     HotCold    `json:"status,omitempty"`
	PlayerType PlayerType `json:"player_type,omitempty"`
	Splits     *Splits    `json:"splits,omitempty"`
	GamesTotal int        `json:"games_total,omitempty"`
	Note       string     `json:"note,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// BuildTrends aggregates games into 14 and 30 day windows and classifies the
// recent form.
func BuildTrends(games []GameLine, playerType PlayerType, now time.Time) TrendsSection {
	if len(games) == 0 {
		return TrendsSection{
			Status:     StatusNeutral,
			PlayerType: playerType,
			Note:       noteNoGameLog,
		}
	}

	splits := ComputeSplits(games, playerType, now)
	return TrendsSection{
		Status:     ClassifyForm(splits),
		PlayerType: playerType,
		Splits:     &splits,
		GamesTotal: len(games),
	}
}

// ComputeSplits buckets games by age. Undated games count toward both
// windows; games with an unparseable date count toward the 30 day window
// only.
func ComputeSplits(games []GameLine, playerType PlayerType, now time.Time) Splits {
	var last14, last30 []GameLine
	for _, g := range games {
		if g.Date == "" {
			last14 = append(last14, g)
			last30 = append(last30, g)
			continue
		}
		played, err := time.ParseInLocation(time.DateOnly, g.Date, now.Location())
		if err != nil {
			last30 = append(last30, g)
			continue
		}
		daysAgo := int(now.Sub(played).Hours() / 24)
		if daysAgo <= 30 {
			last30 = append(last30, g)
		}
		if daysAgo <= 14 {
			last14 = append(last14, g)
		}
	}

	return Splits{
		Last14: aggregate(last14, playerType),
		Last30: aggregate(last30, playerType),
	}
}

func aggregate(games []GameLine, playerType PlayerType) *Window {
	if len(games) == 0 {
		return nil
	}
	if playerType == Pitcher {
		return &Window{Pitching: aggregatePitching(games)}
	}
	return &Window{Hitting: aggregateHitting(games)}
}

func aggregateHitting(games []GameLine) *HittingLine {
	var ab, h, doubles, triples, hr, rbi, bb, k, sb int
	for _, g := range games {
		ab += g.AtBats
		h += g.Hits
		doubles += g.Doubles
		triples += g.Triples
		hr += g.HomeRuns
		rbi += g.RBI
		bb += g.BaseOnBalls
		k += g.StrikeOuts
		sb += g.StolenBases
	}

	line := &HittingLine{HR: hr, RBI: rbi, SB: sb, K: k, BB: bb, Games: len(games)}
	if ab > 0 {
		singles := h - doubles - triples - hr
		totalBases := singles + 2*doubles + 3*triples + 4*hr
		line.AVG = round(float64(h)/float64(ab), 3)
		line.SLG = round(float64(totalBases)/float64(ab), 3)
	}
	if ab+bb > 0 {
		line.OBP = round(float64(h+bb)/float64(ab+bb), 3)
	}
	line.OPS = round(line.OBP+line.SLG, 3)
	return line
}

func aggregatePitching(games []GameLine) *PitchingLine {
	var ip float64
	var er, k, bb, h, w int
	for _, g := range games {
		ip += g.InningsPitched
		er += g.EarnedRuns
		k += g.StrikeOuts
		bb += g.BaseOnBalls
		h += g.Hits
		w += g.Wins
	}

	line := &PitchingLine{IP: round(ip, 1), K: k, BB: bb, W: w, Games: len(games)}
	if ip > 0 {
		line.ERA = round(float64(er)*9/ip, 2)
		line.WHIP = round(float64(bb+h)/ip, 2)
	}
	return line
}

// ClassifyForm reads the 14 day OPS for hitters or ERA for pitchers.
func ClassifyForm(splits Splits) HotCold {
	if splits.Last14 == nil {
		return StatusNeutral
	}
	if hitting := splits.Last14.Hitting; hitting != nil {
		return classifyOPS(hitting.OPS)
	}
	if pitching := splits.Last14.Pitching; pitching != nil {
		return classifyERA(pitching.ERA)
	}
	return StatusNeutral
}

func classifyOPS(ops float64) HotCold {
	switch {
	case ops >= .900:
		return StatusHot
	case ops >= .780:
		return StatusWarm
	case ops >= .650:
		return StatusNeutral
	case ops >= .500:
		return StatusCold
	default:
		return StatusIce
	}
}

func classifyERA(era float64) HotCold {
	switch {
	case era <= 2.50:
		return StatusHot
	case era <= 3.50:
		return StatusWarm
	case era <= 4.50:
		return StatusNeutral
	case era <= 5.50:
		return StatusCold
	default:
		return StatusIce
	}
}
