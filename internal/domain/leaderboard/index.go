package leaderboard

import "strings"

// NameIndex is a lowercase-full-name keyed table, the shape FanGraphs data
// arrives in.
type NameIndex[T any] struct {
	entries map[string]T
	order   []string
}

func NewNameIndex[T any]() *NameIndex[T] {
	return &NameIndex[T]{entries: make(map[string]T)}
}

// Put stores value under the lower-cased name. The first value stored for a
// name is kept.
func (x *NameIndex[T]) Put(name string, value T) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if _, exists := x.entries[key]; exists {
		return
	}
	x.entries[key] = value
	x.order = append(x.order, key)
}

func (x *NameIndex[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Keys returns the index keys in insertion order.
func (x *NameIndex[T]) Keys() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Find looks up the normalized name directly, then falls back to the first
// key, in insertion order, that contains every query token.
func (x *NameIndex[T]) Find(name string) (T, bool) {
	var zero T
	if x.Len() == 0 {
		return zero, false
	}
	norm := NormalizeName(name)
	if norm == "" {
		return zero, false
	}
	if v, ok := x.entries[norm]; ok {
		return v, true
	}
	tokens := strings.Fields(norm)
	for _, key := range x.order {
		if tokensContained(tokens, key) {
			return x.entries[key], true
		}
	}
	return zero, false
}
