package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("pq: relation rankings_snapshots does not exist")) {
		t.Fatalf("expected unrelated error to be false")
	}
}

func TestNullInt64ToPtr(t *testing.T) {
	if got := nullInt64ToPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for invalid value, got=%v", *got)
	}
	got := nullInt64ToPtr(sql.NullInt64{Int64: 592450, Valid: true})
	if got == nil || *got != 592450 {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestRankingsEntryFromRow(t *testing.T) {
	entry, err := rankingsEntryFromRow(rankingsEntryTableModel{
		ID:      7,
		PosType: "B",
		Rank:    1,
		Name:    "Aaron Judge",
		Team:    "NYY",
		Pos:     "OF",
		ZScore:  4.21,
		ZScores: []byte(`{"HR":2.5,"OBP":1.71}`),
		MLBID:   sql.NullInt64{Int64: 592450, Valid: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Aaron Judge" || entry.Rank != 1 || entry.ZScores["HR"] != 2.5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.MLBID == nil || *entry.MLBID != 592450 {
		t.Fatalf("unexpected mlb id: %v", entry.MLBID)
	}

	if _, err := rankingsEntryFromRow(rankingsEntryTableModel{ID: 8, ZScores: []byte(`{`)}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMarshalZScores(t *testing.T) {
	got, err := marshalZScores(nil)
	if err != nil || got != "{}" {
		t.Fatalf("unexpected empty encoding: %q err=%v", got, err)
	}
	got, err = marshalZScores(map[string]float64{"SV": -0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fmt.Sprintf(`{"SV":%v}`, -0.5) {
		t.Fatalf("unexpected encoding: %s", got)
	}
}
