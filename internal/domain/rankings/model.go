package rankings

import (
	"fmt"
	"time"
)

// Entry is one ranked player in a generated snapshot.
type Entry struct {
	Rank    int                `json:"rank"`
	Name    string             `json:"name"`
	Team    string             `json:"team"`
	Pos     string             `json:"pos"`
	ZScore  float64            `json:"z_score"`
	ZScores map[string]float64 `json:"z_scores,omitempty"`
	MLBID   *int64             `json:"mlb_id,omitempty"`
}

// Snapshot is one generated rankings run.
type Snapshot struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Hitters     []Entry   `json:"hitters"`
	Pitchers    []Entry   `json:"pitchers"`
}

func (s Snapshot) Validate() error {
	if s.Source == "" {
		return fmt.Errorf("snapshot source is required")
	}
	if s.GeneratedAt.IsZero() {
		return fmt.Errorf("snapshot generated_at is required")
	}
	return nil
}
