package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
	qb "github.com/riskibarqy/fantasy-baseball/internal/platform/querybuilder"
)

type RankingsRepository struct {
	db *sqlx.DB
}

func NewRankingsRepository(db *sqlx.DB) *RankingsRepository {
	return &RankingsRepository{db: db}
}

func (r *RankingsRepository) Save(ctx context.Context, snapshot rankings.Snapshot) (rankings.Snapshot, error) {
	if err := snapshot.Validate(); err != nil {
		return rankings.Snapshot{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return rankings.Snapshot{}, fmt.Errorf("begin tx save rankings snapshot: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("rankings_snapshots", rankingsSnapshotInsertModel{
		Source:       snapshot.Source,
		GeneratedAt:  snapshot.GeneratedAt.UTC(),
		HitterCount:  len(snapshot.Hitters),
		PitcherCount: len(snapshot.Pitchers),
	}, "RETURNING id")
	if err != nil {
		return rankings.Snapshot{}, fmt.Errorf("build insert rankings snapshot query: %w", err)
	}

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return rankings.Snapshot{}, fmt.Errorf("insert rankings snapshot: %w", err)
	}

	if err := insertEntries(ctx, tx, id, valuation.TypeBatter, snapshot.Hitters); err != nil {
		return rankings.Snapshot{}, err
	}
	if err := insertEntries(ctx, tx, id, valuation.TypePitcher, snapshot.Pitchers); err != nil {
		return rankings.Snapshot{}, err
	}

	if err := tx.Commit(); err != nil {
		return rankings.Snapshot{}, fmt.Errorf("commit save rankings snapshot tx: %w", err)
	}

	snapshot.ID = id
	return snapshot, nil
}

// entryBatchSize keeps a multi-row insert well under the PostgreSQL bind
// parameter limit.
const entryBatchSize = 500

func insertEntries(ctx context.Context, tx *sqlx.Tx, snapshotID int64, posType string, entries []rankings.Entry) error {
	rows := make([]rankingsEntryInsertModel, 0, min(len(entries), entryBatchSize))
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		query, args, err := qb.InsertModels("rankings_entries", rows, "")
		if err != nil {
			return fmt.Errorf("build insert rankings entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert rankings entries snapshot=%d type=%s rows=%d: %w", snapshotID, posType, len(rows), err)
		}
		rows = rows[:0]
		return nil
	}

	for _, entry := range entries {
		zScores, err := marshalZScores(entry.ZScores)
		if err != nil {
			return fmt.Errorf("encode z scores name=%s: %w", entry.Name, err)
		}
		rows = append(rows, rankingsEntryInsertModel{
			SnapshotID: snapshotID,
			PosType:    posType,
			Rank:       entry.Rank,
			Name:       entry.Name,
			Team:       entry.Team,
			Pos:        entry.Pos,
			ZScore:     entry.ZScore,
			ZScores:    zScores,
			MLBID:      entry.MLBID,
		})
		if len(rows) == entryBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (r *RankingsRepository) Latest(ctx context.Context) (rankings.Snapshot, bool, error) {
	query, args, err := qb.Select("*").From("rankings_snapshots").
		OrderBy("generated_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return rankings.Snapshot{}, false, fmt.Errorf("build latest rankings snapshot query: %w", err)
	}

	var row rankingsSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rankings.Snapshot{}, false, nil
		}
		return rankings.Snapshot{}, false, fmt.Errorf("get latest rankings snapshot: %w", err)
	}

	query, args, err = qb.Select("*").From("rankings_entries").
		Where(qb.Eq("snapshot_id", row.ID)).
		OrderBy("pos_type", "rank").
		ToSQL()
	if err != nil {
		return rankings.Snapshot{}, false, fmt.Errorf("build list rankings entries query: %w", err)
	}

	var entries []rankingsEntryTableModel
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return rankings.Snapshot{}, false, fmt.Errorf("list rankings entries snapshot=%d: %w", row.ID, err)
	}

	snapshot := rankings.Snapshot{
		ID:          row.ID,
		Source:      row.Source,
		GeneratedAt: row.GeneratedAt,
		Hitters:     make([]rankings.Entry, 0, row.HitterCount),
		Pitchers:    make([]rankings.Entry, 0, row.PitcherCount),
	}
	for _, item := range entries {
		entry, err := rankingsEntryFromRow(item)
		if err != nil {
			return rankings.Snapshot{}, false, err
		}
		if strings.TrimSpace(item.PosType) == valuation.TypePitcher {
			snapshot.Pitchers = append(snapshot.Pitchers, entry)
		} else {
			snapshot.Hitters = append(snapshot.Hitters, entry)
		}
	}

	return snapshot, true, nil
}

func rankingsEntryFromRow(row rankingsEntryTableModel) (rankings.Entry, error) {
	entry := rankings.Entry{
		Rank:   row.Rank,
		Name:   row.Name,
		Team:   row.Team,
		Pos:    row.Pos,
		ZScore: row.ZScore,
		MLBID:  nullInt64ToPtr(row.MLBID),
	}
	if len(row.ZScores) > 0 {
		if err := jsoniter.Unmarshal(row.ZScores, &entry.ZScores); err != nil {
			return rankings.Entry{}, fmt.Errorf("decode z scores entry=%d: %w", row.ID, err)
		}
	}
	return entry, nil
}

func marshalZScores(scores map[string]float64) (string, error) {
	if len(scores) == 0 {
		return "{}", nil
	}
	raw, err := jsoniter.Marshal(scores)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
