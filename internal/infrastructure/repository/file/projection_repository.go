package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/csvtable"
)

const (
	hitterProjectionsFile  = "projections_hitters.csv"
	pitcherProjectionsFile = "projections_pitchers.csv"
	generatedRankingsFile  = "generated_rankings.json"
)

// ProjectionRepository reads projection exports and the curated rankings
// file, and writes the generated rankings export.
type ProjectionRepository struct {
	dataDir string
	year    int
}

func NewProjectionRepository(dataDir string, year int) *ProjectionRepository {
	return &ProjectionRepository{dataDir: dataDir, year: year}
}

func (r *ProjectionRepository) Hitters(_ context.Context) ([]valuation.Record, bool, error) {
	return r.readProjections(hitterProjectionsFile)
}

func (r *ProjectionRepository) Pitchers(_ context.Context) ([]valuation.Record, bool, error) {
	return r.readProjections(pitcherProjectionsFile)
}

func (r *ProjectionRepository) readProjections(name string) ([]valuation.Record, bool, error) {
	f, err := os.Open(filepath.Join(r.dataDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := csvtable.Read(f)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", name, err)
	}
	out := make([]valuation.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, valuation.Record(row))
	}
	return out, true, nil
}

func (r *ProjectionRepository) RankingsFile() string {
	return filepath.Join(r.dataDir, "player-rankings-"+strconv.Itoa(r.year)+".json")
}

type rankingsDocument struct {
	HittersByTier  map[string]jsoniter.RawMessage `json:"hitters_by_tier"`
	PitchersByTier map[string]jsoniter.RawMessage `json:"pitchers_by_tier"`
}

// Rankings loads the curated rankings file. Tier values that are not lists
// are ignored.
func (r *ProjectionRepository) Rankings(_ context.Context) (valuation.Rankings, bool, error) {
	var doc rankingsDocument
	found, err := readJSON(r.RankingsFile(), &doc)
	if err != nil || !found {
		return valuation.Rankings{}, false, err
	}
	return valuation.Rankings{
		HittersByTier:  decodeTiers(doc.HittersByTier),
		PitchersByTier: decodeTiers(doc.PitchersByTier),
	}, true, nil
}

func decodeTiers(raw map[string]jsoniter.RawMessage) map[string][]valuation.RankedPlayer {
	out := make(map[string][]valuation.RankedPlayer, len(raw))
	for tier, body := range raw {
		var players []valuation.RankedPlayer
		if err := json.Unmarshal(body, &players); err != nil {
			continue
		}
		out[tier] = players
	}
	return out
}

func (r *ProjectionRepository) GeneratedFile() string {
	return filepath.Join(r.dataDir, generatedRankingsFile)
}

func (r *ProjectionRepository) WriteGenerated(_ context.Context, generated valuation.Generated) error {
	return writeJSON(r.GeneratedFile(), generated)
}
