package playerid

import "context"

// Repository persists the lower-cased player name to MLB id table. Save
// merges into what is already stored; existing names are never remapped.
type Repository interface {
	Load(ctx context.Context) (map[string]int64, error)
	Save(ctx context.Context, ids map[string]int64) error
}
