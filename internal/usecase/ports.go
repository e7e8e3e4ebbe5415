package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
)

// MLBPerson is a player record from the MLB Stats API.
type MLBPerson struct {
	ID              int64  `json:"id"`
	FullName        string `json:"full_name"`
	PrimaryPosition string `json:"primary_position"`
	TeamID          int64  `json:"team_id,omitempty"`
	TeamName        string `json:"team_name,omitempty"`
}

type MLBTeam struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type MLBGame struct {
	GamePK   int64  `json:"game_pk"`
	Date     string `json:"date"`
	Away     string `json:"away"`
	AwayID   int64  `json:"away_id"`
	Home     string `json:"home"`
	HomeID   int64  `json:"home_id"`
	Status   string `json:"status"`
	GameTime string `json:"game_time,omitempty"`
}

// StatcastProvider serves Savant leaderboards.
type StatcastProvider interface {
	Expected(ctx context.Context, playerType intel.PlayerType, year int) (*intel.ExpectedBoard, error)
	Boards(ctx context.Context, playerType intel.PlayerType, year int) (intel.StatcastBoards, error)
}

// DisciplineProvider serves plate-discipline rates keyed by player name.
type DisciplineProvider interface {
	Discipline(ctx context.Context, playerType intel.PlayerType, year int) (*intel.DisciplineIndex, error)
}

// SocialFeed serves posts from the fantasy community feed.
type SocialFeed interface {
	Hot(ctx context.Context) ([]intel.Post, error)
	Search(ctx context.Context, query string) ([]intel.Post, error)
}

// MLBProvider serves MLB Stats API lookups.
type MLBProvider interface {
	SeasonPlayers(ctx context.Context, year int) ([]MLBPerson, error)
	SearchPeople(ctx context.Context, name string) ([]MLBPerson, error)
	Person(ctx context.Context, id int64) (MLBPerson, bool, error)
	GameLog(ctx context.Context, id int64, playerType intel.PlayerType, year int, start, end time.Time) ([]intel.GameLine, error)
	Transactions(ctx context.Context, start, end time.Time) ([]intel.Transaction, error)
	Teams(ctx context.Context, year int) ([]MLBTeam, error)
	Schedule(ctx context.Context, day time.Time) ([]MLBGame, error)
}

// ProjectionStore serves the projection pools and curated rankings that
// valuations are computed from. found is false when a file is absent.
type ProjectionStore interface {
	Hitters(ctx context.Context) ([]valuation.Record, bool, error)
	Pitchers(ctx context.Context) ([]valuation.Record, bool, error)
	Rankings(ctx context.Context) (valuation.Rankings, bool, error)
	WriteGenerated(ctx context.Context, generated valuation.Generated) error
}
