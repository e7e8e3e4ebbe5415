package file

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/playerid"
)

const idCacheFile = "mlb-id-cache.json"

// IDCacheRepository keeps the name to MLB id table in one JSON object.
type IDCacheRepository struct {
	mu   sync.Mutex
	path string
}

func NewIDCacheRepository(dataDir string) *IDCacheRepository {
	return &IDCacheRepository{path: filepath.Join(dataDir, idCacheFile)}
}

func (r *IDCacheRepository) Path() string {
	return r.path
}

// Load returns the stored table; a missing file is an empty table.
func (r *IDCacheRepository) Load(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Save merges ids into the stored table. Names already present keep their
// stored id.
func (r *IDCacheRepository) Save(_ context.Context, ids map[string]int64) error {
	if len(ids) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.load()
	if err != nil {
		// an unreadable file is rewritten from what this process knows
		stored = make(map[string]int64, len(ids))
	}
	for name, id := range ids {
		key := playerid.Key(name)
		if key == "" {
			continue
		}
		if _, exists := stored[key]; !exists {
			stored[key] = id
		}
	}
	return writeJSON(r.path, stored)
}

func (r *IDCacheRepository) load() (map[string]int64, error) {
	ids := make(map[string]int64)
	if _, err := readJSON(r.path, &ids); err != nil {
		return map[string]int64{}, err
	}
	if ids == nil {
		ids = make(map[string]int64)
	}
	return ids, nil
}
