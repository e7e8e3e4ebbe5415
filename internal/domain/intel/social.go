package intel

import (
	"sort"
	"strings"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

const (
	maxHeadlines     = 5
	maxTrending      = 20
	defaultFlair     = "General"
	trendingMultiple = 1.5
)

var playerFlairs = map[string]struct{}{
	"Hype":              {},
	"Prospect":          {},
	"Injury":            {},
	"Player Discussion": {},
	"Breaking News":     {},
}

// Post is a social feed post.
type Post struct {
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	URL         string  `json:"url,omitempty"`
	Flair       string  `json:"flair"`
	CreatedUTC  float64 `json:"created_utc"`
}

type ContextSection struct {
	Mentions  int       `json:"mentions"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
	AvgScore  *float64  `json:"avg_score,omitempty"`
	Headlines []string  `json:"headlines"`
	Error     string    `json:"error,omitempty"`
}

// BuildContext summarizes recent mentions of a player.
func BuildContext(posts []Post) ContextSection {
	if len(posts) == 0 {
		return ContextSection{Sentiment: SentimentUnknown, Headlines: []string{}}
	}

	avg := averageScore(posts)
	headlines := make([]string, 0, maxHeadlines)
	for _, p := range posts[:min(len(posts), maxHeadlines)] {
		headlines = append(headlines, p.Title)
	}
	rounded := round(avg, 1)
	return ContextSection{
		Mentions:  len(posts),
		Sentiment: SentimentFromScore(avg),
		AvgScore:  &rounded,
		Headlines: headlines,
	}
}

func SentimentFromScore(avg float64) Sentiment {
	switch {
	case avg > 5:
		return SentimentPositive
	case avg < 1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func averageScore(posts []Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += p.Score
	}
	return float64(total) / float64(len(posts))
}

// Buzz is the hot feed grouped by flair.
type Buzz struct {
	Posts      []Post            `json:"posts"`
	Categories map[string][]Post `json:"categories"`
	Note       string            `json:"note,omitempty"`
}

func GroupByFlair(posts []Post) Buzz {
	if len(posts) == 0 {
		return Buzz{Posts: []Post{}, Categories: map[string][]Post{}, Note: "No posts fetched"}
	}
	categories := make(map[string][]Post)
	for _, p := range posts {
		flair := strings.TrimSpace(p.Flair)
		if flair == "" {
			flair = defaultFlair
		}
		categories[flair] = append(categories[flair], p)
	}
	return Buzz{Posts: posts, Categories: categories}
}

type Trending struct {
	Trending []Post  `json:"trending"`
	AvgScore float64 `json:"avg_score"`
	Note     string  `json:"note,omitempty"`
}

// TrendingPosts highlights player-flaired posts and posts scoring well above
// the feed average, ordered by score plus comments.
func TrendingPosts(posts []Post) Trending {
	if len(posts) == 0 {
		return Trending{Trending: []Post{}, Note: "No posts fetched"}
	}

	avg := averageScore(posts)
	highlighted := make([]Post, 0, len(posts))
	for _, p := range posts {
		_, playerFlair := playerFlairs[p.Flair]
		if playerFlair || float64(p.Score) > avg*trendingMultiple {
			highlighted = append(highlighted, Post{
				Title:       p.Title,
				Score:       p.Score,
				NumComments: p.NumComments,
				Flair:       p.Flair,
			})
		}
	}
	sort.SliceStable(highlighted, func(i, j int) bool {
		return highlighted[i].Score+highlighted[i].NumComments > highlighted[j].Score+highlighted[j].NumComments
	})

	return Trending{
		Trending: highlighted[:min(len(highlighted), maxTrending)],
		AvgScore: round(avg, 1),
	}
}
