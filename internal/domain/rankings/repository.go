package rankings

import "context"

// Repository stores generated rankings snapshots.
type Repository interface {
	Save(ctx context.Context, snapshot Snapshot) (Snapshot, error)
	Latest(ctx context.Context) (Snapshot, bool, error)
}
