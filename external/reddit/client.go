package reddit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/external/upstream"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
)

const (
	DefaultBaseURL   = "https://www.reddit.com"
	DefaultTTL       = 15 * time.Minute
	DefaultSubreddit = "fantasybaseball"

	hotLimit    = 50
	searchLimit = 10
)

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title         string  `json:"title"`
				Score         int     `json:"score"`
				NumComments   int     `json:"num_comments"`
				URL           string  `json:"url"`
				CreatedUTC    float64 `json:"created_utc"`
				LinkFlairText string  `json:"link_flair_text"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (l listing) posts() []intel.Post {
	out := make([]intel.Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		post := child.Data
		out = append(out, intel.Post{
			Title:       post.Title,
			Score:       post.Score,
			NumComments: post.NumComments,
			URL:         post.URL,
			Flair:       post.LinkFlairText,
			CreatedUTC:  post.CreatedUTC,
		})
	}
	return out
}

// Client reads the public JSON listings of one subreddit.
type Client struct {
	fetcher   *upstream.Client
	cache     *cache.Store
	ttl       time.Duration
	subreddit string
}

func NewClient(fetcher *upstream.Client, store *cache.Store, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Client{fetcher: fetcher, cache: store, ttl: ttl, subreddit: DefaultSubreddit}
}

// Hot returns the subreddit's hot listing.
func (c *Client) Hot(ctx context.Context) ([]intel.Post, error) {
	return c.load(ctx, cache.Key("reddit_hot"), "/r/"+c.subreddit+"/hot.json", map[string]string{
		"limit": strconv.Itoa(hotLimit),
	})
}

// Search returns the newest posts mentioning query.
func (c *Client) Search(ctx context.Context, query string) ([]intel.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []intel.Post{}, nil
	}
	return c.load(ctx, cache.Key("reddit_search", strings.ToLower(query)), "/r/"+c.subreddit+"/search.json", map[string]string{
		"q":           query,
		"sort":        "new",
		"restrict_sr": "on",
		"limit":       strconv.Itoa(searchLimit),
	})
}

func (c *Client) load(ctx context.Context, key, path string, query map[string]string) ([]intel.Post, error) {
	out, err := c.cache.GetOrLoad(ctx, key, c.ttl, func(ctx context.Context) (any, error) {
		var payload listing
		if err := c.fetcher.GetJSON(ctx, path, query, &payload); err != nil {
			return nil, fmt.Errorf("fetch reddit %s: %w", path, err)
		}
		return payload.posts(), nil
	})
	if err != nil {
		return nil, err
	}

	posts, ok := out.([]intel.Post)
	if !ok {
		return nil, fmt.Errorf("unexpected cached reddit type %T", out)
	}
	return posts, nil
}
