package fangraphs

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/external/upstream"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/leaderboard"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
)

const (
	DefaultBaseURL = "https://www.fangraphs.com"
	DefaultTTL     = 6 * time.Hour

	leadersPath   = "/api/leaders/major-league/data"
	qualification = 25
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

type leadersEnvelope struct {
	Data []DisciplineRow `json:"data"`
}

// DisciplineRow is one player row of the leaders API. Rates are fractions.
type DisciplineRow struct {
	PlayerName  string   `json:"PlayerName"`
	Name        string   `json:"Name"`
	BBRate      *float64 `json:"BB%"`
	KRate       *float64 `json:"K%"`
	OSwingPct   *float64 `json:"O-Swing%"`
	ZContactPct *float64 `json:"Z-Contact%"`
	SwStrPct    *float64 `json:"SwStr%"`
}

func (r DisciplineRow) displayName() string {
	if name := strings.TrimSpace(r.PlayerName); name != "" {
		return name
	}
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(r.Name, ""))
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

// Discipline returns the season plate-discipline table for batters or
// pitchers, keyed by lower-cased player name.
func (c *Client) Discipline(ctx context.Context, playerType intel.PlayerType, year int) (*intel.DisciplineIndex, error) {
	group := "bat"
	if playerType == intel.Pitcher {
		group = "pit"
	}

	key := cache.Key("fangraphs", group, year)
	out, err := c.cache.GetOrLoad(ctx, key, c.ttl, func(ctx context.Context) (any, error) {
		season := strconv.Itoa(year)
		var envelope leadersEnvelope
		err := c.fetcher.GetJSON(ctx, leadersPath, map[string]string{
			"pos":       "all",
			"stats":     group,
			"lg":        "all",
			"qual":      strconv.Itoa(qualification),
			"season":    season,
			"season1":   season,
			"ind":       "0",
			"type":      "8",
			"pageitems": "2000",
			"pagenum":   "1",
		}, &envelope)
		if err != nil {
			return nil, fmt.Errorf("fetch fangraphs %s: %w", group, err)
		}

		index := leaderboard.NewNameIndex[intel.DisciplineRecord]()
		for _, row := range envelope.Data {
			index.Put(row.displayName(), intel.DisciplineRecord{
				BBRate:      row.BBRate,
				KRate:       row.KRate,
				OSwingPct:   row.OSwingPct,
				ZContactPct: row.ZContactPct,
				SwStrPct:    row.SwStrPct,
			})
		}
		return index, nil
	})
	if err != nil {
		return nil, err
	}

	index, ok := out.(*intel.DisciplineIndex)
	if !ok {
		return nil, fmt.Errorf("unexpected cached fangraphs type %T", out)
	}
	return index, nil
}
