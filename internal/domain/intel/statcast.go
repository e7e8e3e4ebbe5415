package intel

import "github.com/riskibarqy/fantasy-baseball/internal/domain/leaderboard"

const noteNotInSavant = "Player not found in Savant leaderboards (may not meet minimum PA/IP threshold)"

// ExpectedRecord is one row of the expected-statistics leaderboard.
type ExpectedRecord struct {
	Name  string
	XWOBA *float64
	WOBA  *float64
	XBA   *float64
	BA    *float64
	XSLG  *float64
	SLG   *float64
	PA    *float64
}

// BattedBallRecord is one row of the statcast (batted ball) leaderboard.
type BattedBallRecord struct {
	AvgExitVelo *float64
	MaxExitVelo *float64
	BarrelPct   *float64
	HardHitPct  *float64
	LaunchAngle *float64
}

// SprintRecord is one row of the sprint speed leaderboard. SprintSpeed is in
// ft/s (higher is faster), HomeToFirst in seconds (lower is faster).
type SprintRecord struct {
	SprintSpeed *float64
	HomeToFirst *float64
}

type (
	ExpectedBoard   = leaderboard.Board[ExpectedRecord]
	BattedBallBoard = leaderboard.Board[BattedBallRecord]
	SprintBoard     = leaderboard.Board[SprintRecord]
)

// StatcastBoards is the leaderboard snapshot for one player type. Sprint is
// nil for pitchers.
type StatcastBoards struct {
	Expected   *ExpectedBoard
	BattedBall *BattedBallBoard
	Sprint     *SprintBoard
}

type ExpectedStats struct {
	XWOBA     *float64 `json:"xwoba"`
	WOBA      *float64 `json:"woba"`
	XWOBADiff *float64 `json:"xwoba_diff"`
	XWOBAPct  *int     `json:"xwoba_pct"`
	XWOBATier *Tier    `json:"xwoba_tier"`
	XBA       *float64 `json:"xba"`
	BA        *float64 `json:"ba"`
	XBAPct    *int     `json:"xba_pct"`
	XSLG      *float64 `json:"xslg"`
	SLG       *float64 `json:"slg"`
	XSLGPct   *int     `json:"xslg_pct"`
	PA        *int     `json:"pa"`
}

type BattedBall struct {
	AvgExitVelo    *float64 `json:"avg_exit_velo"`
	MaxExitVelo    *float64 `json:"max_exit_velo"`
	BarrelPct      *float64 `json:"barrel_pct"`
	HardHitPct     *float64 `json:"hard_hit_pct"`
	LaunchAngle    *float64 `json:"launch_angle"`
	EVPct          *int     `json:"ev_pct"`
	EVTier         *Tier    `json:"ev_tier"`
	BarrelPctRank  *int     `json:"barrel_pct_rank"`
	BarrelTier     *Tier    `json:"barrel_tier"`
	HardHitPctRank *int     `json:"hard_hit_pct_rank"`
}

type Speed struct {
	SprintSpeed *float64 `json:"sprint_speed"`
	HomeToFirst *float64 `json:"home_to_first,omitempty"`
	SprintPct   *int     `json:"sprint_pct"`
	SpeedTier   *Tier    `json:"speed_tier"`
}

type StatcastSection struct {
	PlayerType PlayerType     `json:"player_type,omitempty"`
	Expected   *ExpectedStats `json:"expected,omitempty"`
	BattedBall *BattedBall    `json:"batted_ball,omitempty"`
	Speed      *Speed         `json:"speed,omitempty"`
	Note       string         `json:"note,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// BuildStatcast ranks the player against every leaderboard in boards. The
// player is located by MLB id when known, then by name.
func BuildStatcast(name string, mlbID int64, playerType PlayerType, boards StatcastBoards) StatcastSection {
	out := StatcastSection{PlayerType: playerType}

	if row, ok := boards.Expected.Lookup(name, mlbID); ok {
		out.Expected = buildExpected(row, boards.Expected)
	}
	if row, ok := boards.BattedBall.Lookup(name, mlbID); ok {
		out.BattedBall = buildBattedBall(row, boards.BattedBall)
	}
	if playerType == Batter {
		if row, ok := boards.Sprint.Lookup(name, mlbID); ok {
			out.Speed = buildSpeed(row, boards.Sprint)
		}
	}

	if out.Expected == nil && out.BattedBall == nil && out.Speed == nil {
		out.Note = noteNotInSavant
	}
	return out
}

func buildExpected(row ExpectedRecord, board *ExpectedBoard) *ExpectedStats {
	xwobaPct := rank(row.XWOBA, board.Values(func(r ExpectedRecord) *float64 { return r.XWOBA }), true)
	xbaPct := rank(row.XBA, board.Values(func(r ExpectedRecord) *float64 { return r.XBA }), true)
	xslgPct := rank(row.XSLG, board.Values(func(r ExpectedRecord) *float64 { return r.XSLG }), true)

	out := &ExpectedStats{
		XWOBA:     row.XWOBA,
		WOBA:      row.WOBA,
		XWOBAPct:  xwobaPct,
		XWOBATier: tierOf(xwobaPct),
		XBA:       row.XBA,
		BA:        row.BA,
		XBAPct:    xbaPct,
		XSLG:      row.XSLG,
		SLG:       row.SLG,
		XSLGPct:   xslgPct,
	}
	if row.XWOBA != nil && row.WOBA != nil {
		diff := round(*row.XWOBA-*row.WOBA, 3)
		out.XWOBADiff = &diff
	}
	if row.PA != nil {
		pa := int(*row.PA)
		out.PA = &pa
	}
	return out
}

func buildBattedBall(row BattedBallRecord, board *BattedBallBoard) *BattedBall {
	evPct := rank(row.AvgExitVelo, board.Values(func(r BattedBallRecord) *float64 { return r.AvgExitVelo }), true)
	barrelPct := rank(row.BarrelPct, board.Values(func(r BattedBallRecord) *float64 { return r.BarrelPct }), true)
	hardHitPct := rank(row.HardHitPct, board.Values(func(r BattedBallRecord) *float64 { return r.HardHitPct }), true)

	return &BattedBall{
		AvgExitVelo:    row.AvgExitVelo,
		MaxExitVelo:    row.MaxExitVelo,
		BarrelPct:      row.BarrelPct,
		HardHitPct:     row.HardHitPct,
		LaunchAngle:    row.LaunchAngle,
		EVPct:          evPct,
		EVTier:         tierOf(evPct),
		BarrelPctRank:  barrelPct,
		BarrelTier:     tierOf(barrelPct),
		HardHitPctRank: hardHitPct,
	}
}

// buildSpeed ranks sprint speed when the board carries it and falls back to
// home-to-first time, where a lower time ranks higher.
func buildSpeed(row SprintRecord, board *SprintBoard) *Speed {
	var pct *int
	if row.SprintSpeed != nil {
		pct = rank(row.SprintSpeed, board.Values(func(r SprintRecord) *float64 { return r.SprintSpeed }), true)
	} else {
		pct = rank(row.HomeToFirst, board.Values(func(r SprintRecord) *float64 { return r.HomeToFirst }), false)
	}
	return &Speed{
		SprintSpeed: row.SprintSpeed,
		HomeToFirst: row.HomeToFirst,
		SprintPct:   pct,
		SpeedTier:   tierOf(pct),
	}
}

// DetectPlayerType checks the batter board, then the pitcher board. found is
// false when the player is on neither and the caller should fall back to the
// primary position.
func DetectPlayerType(name string, mlbID int64, batters, pitchers *ExpectedBoard) (PlayerType, bool) {
	if _, ok := batters.Lookup(name, mlbID); ok {
		return Batter, true
	}
	if _, ok := pitchers.Lookup(name, mlbID); ok {
		return Pitcher, true
	}
	return Batter, false
}
