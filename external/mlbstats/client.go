package mlbstats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/external/upstream"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

const (
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"
	DefaultTTL     = 30 * time.Minute

	// mlbDateLayout is the MM/DD/YYYY form the API expects in date ranges.
	mlbDateLayout = "01/02/2006"
	isoDateLayout = "2006-01-02"
)

type personPayload struct {
	ID              int64  `json:"id"`
	FullName        string `json:"fullName"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
	CurrentTeam struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"currentTeam"`
}

func (p personPayload) toPerson() usecase.MLBPerson {
	return usecase.MLBPerson{
		ID:              p.ID,
		FullName:        p.FullName,
		PrimaryPosition: p.PrimaryPosition.Abbreviation,
		TeamID:          p.CurrentTeam.ID,
		TeamName:        p.CurrentTeam.Name,
	}
}

type peopleEnvelope struct {
	People []personPayload `json:"people"`
}

func (e peopleEnvelope) people() []usecase.MLBPerson {
	out := make([]usecase.MLBPerson, 0, len(e.People))
	for _, p := range e.People {
		out = append(out, p.toPerson())
	}
	return out
}

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

// SeasonPlayers lists every player on an MLB roster in the season. The result
// is not cached; callers persist what they need.
func (c *Client) SeasonPlayers(ctx context.Context, year int) ([]usecase.MLBPerson, error) {
	var payload peopleEnvelope
	if err := c.fetcher.GetJSON(ctx, "/sports/1/players", map[string]string{"season": strconv.Itoa(year)}, &payload); err != nil {
		return nil, fmt.Errorf("fetch season players: %w", err)
	}
	return payload.people(), nil
}

// SearchPeople runs the player name search.
func (c *Client) SearchPeople(ctx context.Context, name string) ([]usecase.MLBPerson, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var payload peopleEnvelope
	if err := c.fetcher.GetJSON(ctx, "/people/search", map[string]string{"names": name}, &payload); err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	return payload.people(), nil
}

// Person fetches one player by id.
func (c *Client) Person(ctx context.Context, id int64) (usecase.MLBPerson, bool, error) {
	out, err := c.cache.GetOrLoad(ctx, cache.Key("mlb_person", id), c.ttl, func(ctx context.Context) (any, error) {
		var payload peopleEnvelope
		if err := c.fetcher.GetJSON(ctx, "/people/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
			return nil, fmt.Errorf("fetch person %d: %w", id, err)
		}
		return payload.people(), nil
	})
	if err != nil {
		return usecase.MLBPerson{}, false, err
	}
	people, _ := out.([]usecase.MLBPerson)
	if len(people) == 0 {
		return usecase.MLBPerson{}, false, nil
	}
	return people[0], true, nil
}

type gameLogEnvelope struct {
	Stats []struct {
		Splits []struct {
			Date     string `json:"date"`
			Opponent struct {
				Name string `json:"name"`
			} `json:"opponent"`
			Stat struct {
				AtBats         int    `json:"atBats"`
				Hits           int    `json:"hits"`
				Doubles        int    `json:"doubles"`
				Triples        int    `json:"triples"`
				HomeRuns       int    `json:"homeRuns"`
				RBI            int    `json:"rbi"`
				BaseOnBalls    int    `json:"baseOnBalls"`
				StrikeOuts     int    `json:"strikeOuts"`
				StolenBases    int    `json:"stolenBases"`
				InningsPitched string `json:"inningsPitched"`
				EarnedRuns     int    `json:"earnedRuns"`
				Wins           int    `json:"wins"`
			} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// GameLog returns the player's games between start and end in the given
// stat group (hitting or pitching).
func (c *Client) GameLog(ctx context.Context, id int64, playerType intel.PlayerType, year int, start, end time.Time) ([]intel.GameLine, error) {
	group := playerType.StatGroup()
	startDate, endDate := start.Format(mlbDateLayout), end.Format(mlbDateLayout)
	key := cache.Key("mlb_gamelog", id, group, startDate, endDate)

	out, err := c.cache.GetOrLoad(ctx, key, c.ttl, func(ctx context.Context) (any, error) {
		var payload gameLogEnvelope
		err := c.fetcher.GetJSON(ctx, "/people/"+strconv.FormatInt(id, 10)+"/stats", map[string]string{
			"stats":     "gameLog",
			"group":     group,
			"season":    strconv.Itoa(year),
			"startDate": startDate,
			"endDate":   endDate,
		}, &payload)
		if err != nil {
			return nil, fmt.Errorf("fetch game log %d: %w", id, err)
		}

		games := make([]intel.GameLine, 0, 32)
		for _, group := range payload.Stats {
			for _, split := range group.Splits {
				s := split.Stat
				games = append(games, intel.GameLine{
					Date:           split.Date,
					Opponent:       split.Opponent.Name,
					AtBats:         s.AtBats,
					Hits:           s.Hits,
					Doubles:        s.Doubles,
					Triples:        s.Triples,
					HomeRuns:       s.HomeRuns,
					RBI:            s.RBI,
					BaseOnBalls:    s.BaseOnBalls,
					StrikeOuts:     s.StrikeOuts,
					StolenBases:    s.StolenBases,
					InningsPitched: ParseInnings(s.InningsPitched),
					EarnedRuns:     s.EarnedRuns,
					Wins:           s.Wins,
				})
			}
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}

	games, ok := out.([]intel.GameLine)
	if !ok {
		return nil, fmt.Errorf("unexpected cached game log type %T", out)
	}
	return games, nil
}

type transactionsEnvelope struct {
	Transactions []struct {
		TypeDesc    string `json:"typeDesc"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Person      *struct {
			FullName string `json:"fullName"`
		} `json:"person"`
		ToTeam *struct {
			Name string `json:"name"`
		} `json:"toTeam"`
		FromTeam *struct {
			Name string `json:"name"`
		} `json:"fromTeam"`
	} `json:"transactions"`
}

// Transactions lists league transactions between start and end inclusive.
func (c *Client) Transactions(ctx context.Context, start, end time.Time) ([]intel.Transaction, error) {
	startDate, endDate := start.Format(mlbDateLayout), end.Format(mlbDateLayout)
	key := cache.Key("mlb_transactions", startDate, endDate)

	out, err := c.cache.GetOrLoad(ctx, key, c.ttl, func(ctx context.Context) (any, error) {
		var payload transactionsEnvelope
		err := c.fetcher.GetJSON(ctx, "/transactions", map[string]string{
			"startDate": startDate,
			"endDate":   endDate,
		}, &payload)
		if err != nil {
			return nil, fmt.Errorf("fetch transactions: %w", err)
		}

		txs := make([]intel.Transaction, 0, len(payload.Transactions))
		for _, tx := range payload.Transactions {
			item := intel.Transaction{
				Type:        tx.TypeDesc,
				Date:        tx.Date,
				Description: tx.Description,
			}
			if tx.Person != nil {
				item.PlayerName = tx.Person.FullName
			}
			switch {
			case tx.ToTeam != nil:
				item.Team = tx.ToTeam.Name
			case tx.FromTeam != nil:
				item.Team = tx.FromTeam.Name
			}
			txs = append(txs, item)
		}
		return txs, nil
	})
	if err != nil {
		return nil, err
	}

	txs, ok := out.([]intel.Transaction)
	if !ok {
		return nil, fmt.Errorf("unexpected cached transactions type %T", out)
	}
	return txs, nil
}

// Teams lists the MLB clubs for a season.
func (c *Client) Teams(ctx context.Context, year int) ([]usecase.MLBTeam, error) {
	out, err := c.cache.GetOrLoad(ctx, cache.Key("mlb_teams", year), c.ttl, func(ctx context.Context) (any, error) {
		var payload struct {
			Teams []usecase.MLBTeam `json:"teams"`
		}
		err := c.fetcher.GetJSON(ctx, "/teams", map[string]string{
			"sportId": "1",
			"season":  strconv.Itoa(year),
		}, &payload)
		if err != nil {
			return nil, fmt.Errorf("fetch teams: %w", err)
		}
		return payload.Teams, nil
	})
	if err != nil {
		return nil, err
	}
	teams, _ := out.([]usecase.MLBTeam)
	return teams, nil
}

type scheduleEnvelope struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePK   int64  `json:"gamePk"`
			GameDate string `json:"gameDate"`
			Status   struct {
				DetailedState string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away scheduleSide `json:"away"`
				Home scheduleSide `json:"home"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleSide struct {
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// Schedule lists the games on day.
func (c *Client) Schedule(ctx context.Context, day time.Time) ([]usecase.MLBGame, error) {
	date := day.Format(isoDateLayout)
	out, err := c.cache.GetOrLoad(ctx, cache.Key("mlb_schedule", date), c.ttl, func(ctx context.Context) (any, error) {
		var payload scheduleEnvelope
		err := c.fetcher.GetJSON(ctx, "/schedule", map[string]string{
			"sportId": "1",
			"date":    date,
		}, &payload)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule: %w", err)
		}

		games := make([]usecase.MLBGame, 0, 16)
		for _, d := range payload.Dates {
			for _, g := range d.Games {
				games = append(games, usecase.MLBGame{
					GamePK:   g.GamePK,
					Date:     d.Date,
					Away:     g.Teams.Away.Team.Name,
					AwayID:   g.Teams.Away.Team.ID,
					Home:     g.Teams.Home.Team.Name,
					HomeID:   g.Teams.Home.Team.ID,
					Status:   g.Status.DetailedState,
					GameTime: g.GameDate,
				})
			}
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}
	games, _ := out.([]usecase.MLBGame)
	return games, nil
}

// ParseInnings converts box-score innings ("6.1" is six and one third) to
// true innings. Unparseable values count as zero.
func ParseInnings(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	whole, frac, _ := strings.Cut(raw, ".")
	innings, err := strconv.Atoi(whole)
	if err != nil {
		return 0
	}
	outs := 0
	if frac != "" {
		if outs, err = strconv.Atoi(frac); err != nil || outs < 0 || outs > 2 {
			return 0
		}
	}
	return float64(innings) + float64(outs)/3
}
