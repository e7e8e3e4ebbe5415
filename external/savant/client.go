package savant

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-baseball/external/upstream"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/leaderboard"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/csvtable"
)

const (
	DefaultBaseURL = "https://baseballsavant.mlb.com"
	DefaultTTL     = 6 * time.Hour

	expectedPath = "/leaderboard/expected_statistics"
	statcastPath = "/leaderboard/statcast"
	sprintPath   = "/leaderboard/sprint_speed"
)

// Client reads Baseball Savant leaderboard CSV exports. Parsed boards are
// cached per (leaderboard, type, year).
type Client struct {
	fetcher *upstream.Client
	cache   *cache.Store
	ttl     time.Duration
}

func NewClient(fetcher *upstream.Client, store *cache.Store, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Client{fetcher: fetcher, cache: store, ttl: ttl}
}

func (c *Client) Expected(ctx context.Context, playerType intel.PlayerType, year int) (*intel.ExpectedBoard, error) {
	return load(ctx, c, "savant_expected", expectedPath, playerType, year, 25, expectedEntry)
}

func (c *Client) Statcast(ctx context.Context, playerType intel.PlayerType, year int) (*intel.BattedBallBoard, error) {
	return load(ctx, c, "savant_statcast", statcastPath, playerType, year, 25, battedBallEntry)
}

func (c *Client) SprintSpeed(ctx context.Context, playerType intel.PlayerType, year int) (*intel.SprintBoard, error) {
	return load(ctx, c, "savant_sprint", sprintPath, playerType, year, 10, sprintEntry)
}

// Boards fetches every leaderboard a statcast section needs. Sprint speed is
// only fetched for batters.
func (c *Client) Boards(ctx context.Context, playerType intel.PlayerType, year int) (intel.StatcastBoards, error) {
	expected, err := c.Expected(ctx, playerType, year)
	if err != nil {
		return intel.StatcastBoards{}, err
	}
	battedBall, err := c.Statcast(ctx, playerType, year)
	if err != nil {
		return intel.StatcastBoards{}, err
	}
	boards := intel.StatcastBoards{Expected: expected, BattedBall: battedBall}
	if playerType == intel.Batter {
		if boards.Sprint, err = c.SprintSpeed(ctx, playerType, year); err != nil {
			return intel.StatcastBoards{}, err
		}
	}
	return boards, nil
}

func load[T any](
	ctx context.Context,
	c *Client,
	name, path string,
	playerType intel.PlayerType,
	year, minimum int,
	toEntry func(leaderboard.Row) (leaderboard.Entry[T], bool),
) (*leaderboard.Board[T], error) {
	key := cache.Key(name, playerType.SavantType(), year)
	out, err := c.cache.GetOrLoad(ctx, key, c.ttl, func(ctx context.Context) (any, error) {
		raw, err := c.fetcher.GetBytes(ctx, path, map[string]string{
			"type":     playerType.SavantType(),
			"year":     strconv.Itoa(year),
			"position": "",
			"team":     "",
			"min":      strconv.Itoa(minimum),
			"csv":      "true",
		})
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		rows, err := csvtable.ReadBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		entries := make([]leaderboard.Entry[T], 0, len(rows))
		for _, row := range rows {
			if entry, ok := toEntry(leaderboard.Row(row)); ok {
				entries = append(entries, entry)
			}
		}
		return leaderboard.NewBoard(entries), nil
	})
	if err != nil {
		return nil, err
	}

	board, ok := out.(*leaderboard.Board[T])
	if !ok {
		return nil, fmt.Errorf("unexpected cached %s type %T", name, out)
	}
	return board, nil
}

func expectedEntry(row leaderboard.Row) (leaderboard.Entry[intel.ExpectedRecord], bool) {
	name, _ := row.Value(leaderboard.ColumnPlayerName)
	return leaderboard.EntryFromRow(row, intel.ExpectedRecord{
		Name:  name,
		XWOBA: row.Float("est_woba"),
		WOBA:  row.Float("woba"),
		XBA:   row.Float("est_ba"),
		BA:    row.Float("ba"),
		XSLG:  row.Float("est_slg"),
		SLG:   row.Float("slg"),
		PA:    row.Float("pa"),
	})
}

func battedBallEntry(row leaderboard.Row) (leaderboard.Entry[intel.BattedBallRecord], bool) {
	return leaderboard.EntryFromRow(row, intel.BattedBallRecord{
		AvgExitVelo: row.Float("avg_hit_speed", "exit_velocity_avg"),
		MaxExitVelo: row.Float("max_hit_speed", "exit_velocity_max"),
		BarrelPct:   row.Float("brl_percent", "barrel_batted_rate"),
		HardHitPct:  row.Float("hard_hit_percent", "hard_hit_rate"),
		LaunchAngle: row.Float("avg_launch_angle", "launch_angle_avg"),
	})
}

func sprintEntry(row leaderboard.Row) (leaderboard.Entry[intel.SprintRecord], bool) {
	return leaderboard.EntryFromRow(row, intel.SprintRecord{
		SprintSpeed: row.Float("sprint_speed"),
		HomeToFirst: row.Float("hp_to_1b"),
	})
}
