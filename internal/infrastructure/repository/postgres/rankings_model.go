package postgres

import (
	"database/sql"
	"time"
)

type rankingsSnapshotTableModel struct {
	ID           int64     `db:"id"`
	Source       string    `db:"source"`
	GeneratedAt  time.Time `db:"generated_at"`
	HitterCount  int       `db:"hitter_count"`
	PitcherCount int       `db:"pitcher_count"`
	CreatedAt    time.Time `db:"created_at"`
}

type rankingsSnapshotInsertModel struct {
	Source       string    `db:"source"`
	GeneratedAt  time.Time `db:"generated_at"`
	HitterCount  int       `db:"hitter_count"`
	PitcherCount int       `db:"pitcher_count"`
}

type rankingsEntryTableModel struct {
	ID         int64         `db:"id"`
	SnapshotID int64         `db:"snapshot_id"`
	PosType    string        `db:"pos_type"`
	Rank       int           `db:"rank"`
	Name       string        `db:"name"`
	Team       string        `db:"team"`
	Pos        string        `db:"pos"`
	ZScore     float64       `db:"z_score"`
	ZScores    []byte        `db:"z_scores"`
	MLBID      sql.NullInt64 `db:"mlb_id"`
}

type rankingsEntryInsertModel struct {
	SnapshotID int64   `db:"snapshot_id"`
	PosType    string  `db:"pos_type"`
	Rank       int     `db:"rank"`
	Name       string  `db:"name"`
	Team       string  `db:"team"`
	Pos        string  `db:"pos"`
	ZScore     float64 `db:"z_score"`
	ZScores    string  `db:"z_scores"`
	MLBID      *int64  `db:"mlb_id"`
}
