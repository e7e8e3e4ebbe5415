package leaderboard

import (
	"strconv"
	"strings"
)

const (
	ColumnLastFirst  = "last_name, first_name"
	ColumnPlayerName = "player_name"
	ColumnName       = "name"
	ColumnPlayerID   = "player_id"
)

// Row is one raw leaderboard record keyed by column name.
type Row map[string]string

// Value returns the first non-empty value among columns.
func (r Row) Value(columns ...string) (string, bool) {
	for _, column := range columns {
		if v := strings.TrimSpace(r[column]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Float probes columns in order and parses the first non-empty value.
// Returns nil when nothing parses.
func (r Row) Float(columns ...string) *float64 {
	raw, ok := r.Value(columns...)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Entry is a typed leaderboard record plus the keys it is reachable by.
type Entry[T any] struct {
	Key      string
	Aliases  []string
	PlayerID int64
	Record   T
}

// EntryFromRow derives the index key, aliases and player id from the standard
// Savant name columns. ok is false when the row has neither a name nor an id.
func EntryFromRow[T any](row Row, record T) (Entry[T], bool) {
	key, _ := row.Value(ColumnLastFirst, ColumnPlayerName, ColumnName)
	entry := Entry[T]{Key: key, Record: record}
	for _, column := range []string{ColumnPlayerName, ColumnLastFirst} {
		if alias, ok := row.Value(column); ok {
			entry.Aliases = append(entry.Aliases, alias)
		}
	}
	if raw, ok := row.Value(ColumnPlayerID); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			entry.PlayerID = id
		}
	}
	return entry, entry.Key != "" || entry.PlayerID > 0
}

// Board is a leaderboard population. Entries keep insertion order and are
// indexed by display-name key and by player id.
type Board[T any] struct {
	entries []Entry[T]
	byID    map[int64]int
}

func NewBoard[T any](entries []Entry[T]) *Board[T] {
	b := &Board[T]{
		entries: make([]Entry[T], 0, len(entries)),
		byID:    make(map[int64]int, len(entries)),
	}
	for _, entry := range entries {
		if entry.Key == "" && entry.PlayerID <= 0 {
			continue
		}
		if entry.PlayerID > 0 {
			b.byID[entry.PlayerID] = len(b.entries)
		}
		b.entries = append(b.entries, entry)
	}
	return b
}

func (b *Board[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

func (b *Board[T]) Entries() []Entry[T] {
	if b == nil {
		return nil
	}
	return b.entries
}

// Find locates name in the board. An exact normalized match on the key or an
// alias wins. Otherwise the first entry, in insertion order, whose normalized
// key contains every query token is returned. The fuzzy pass picks the first
// hit, not the closest one, so shared surnames can resolve to the wrong
// player.
func (b *Board[T]) Find(name string) (T, bool) {
	var zero T
	if b.Len() == 0 {
		return zero, false
	}
	norm := NormalizeName(name)
	if norm == "" {
		return zero, false
	}

	for _, entry := range b.entries {
		if entry.Key != "" && NormalizeName(entry.Key) == norm {
			return entry.Record, true
		}
		for _, alias := range entry.Aliases {
			if NormalizeName(alias) == norm {
				return entry.Record, true
			}
		}
	}

	tokens := strings.Fields(norm)
	for _, entry := range b.entries {
		if entry.Key == "" {
			continue
		}
		if tokensContained(tokens, NormalizeName(entry.Key)) {
			return entry.Record, true
		}
	}
	return zero, false
}

func (b *Board[T]) FindByID(id int64) (T, bool) {
	var zero T
	if b.Len() == 0 || id <= 0 {
		return zero, false
	}
	idx, ok := b.byID[id]
	if !ok {
		return zero, false
	}
	return b.entries[idx].Record, true
}

// Lookup tries the player id first when one is known, then the name.
func (b *Board[T]) Lookup(name string, playerID int64) (T, bool) {
	if record, ok := b.FindByID(playerID); ok {
		return record, true
	}
	return b.Find(name)
}

// Values collects the population for one metric, skipping records where the
// metric is missing.
func (b *Board[T]) Values(metric func(T) *float64) []float64 {
	if b.Len() == 0 || metric == nil {
		return nil
	}
	out := make([]float64, 0, len(b.entries))
	for _, entry := range b.entries {
		if v := metric(entry.Record); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
