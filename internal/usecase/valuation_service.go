package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/valuation"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultRankingsCount = 25

// BatchIntelProvider enriches valuation output with intelligence packets.
type BatchIntelProvider interface {
	BatchIntel(ctx context.Context, names []string, sections []intel.Section) (map[string]intel.Packet, error)
}

type ValuationConfig struct {
	Hitters  valuation.CategorySpec
	Pitchers valuation.CategorySpec
}

func DefaultValuationConfig() ValuationConfig {
	return ValuationConfig{
		Hitters:  valuation.DefaultHitterSpec(),
		Pitchers: valuation.DefaultPitcherSpec(),
	}
}

type RankedPlayer struct {
	Rank   int           `json:"rank"`
	Name   string        `json:"name"`
	Team   string        `json:"team"`
	Pos    string        `json:"pos"`
	ZScore float64       `json:"z_score"`
	MLBID  *int64        `json:"mlb_id"`
	Intel  *intel.Packet `json:"intel,omitempty"`
}

type RankingsResult struct {
	Source  valuation.Source `json:"source"`
	PosType string           `json:"pos_type"`
	Players []RankedPlayer   `json:"players"`
}

type ComparedPlayer struct {
	Name  string        `json:"name"`
	Type  string        `json:"type"`
	Team  string        `json:"team"`
	Pos   string        `json:"pos"`
	Intel *intel.Packet `json:"intel,omitempty"`
}

type ZPair struct {
	Player1 float64 `json:"player1"`
	Player2 float64 `json:"player2"`
}

type Comparison struct {
	Player1 ComparedPlayer   `json:"player1"`
	Player2 ComparedPlayer   `json:"player2"`
	ZScores map[string]ZPair `json:"z_scores"`
}

type PlayerValue struct {
	Name     string             `json:"name"`
	Type     string             `json:"type"`
	Team     string             `json:"team"`
	Pos      string             `json:"pos"`
	RawStats map[string]float64 `json:"raw_stats"`
	ZScores  map[string]float64 `json:"z_scores"`
	Intel    *intel.Packet      `json:"intel,omitempty"`
}

type ValueResult struct {
	Players []PlayerValue `json:"players"`
}

type GenerateResult struct {
	Source      valuation.Source `json:"source"`
	Hitters     int              `json:"hitters"`
	Pitchers    int              `json:"pitchers"`
	SnapshotID  int64            `json:"snapshot_id"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ValuationService computes z-score valuations from the best available
// projection source and serves rankings, comparisons and exports on top.
type ValuationService struct {
	projections ProjectionStore
	snapshots   rankings.Repository
	ids         IDResolver
	intel       BatchIntelProvider
	cfg         ValuationConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewValuationService(
	projections ProjectionStore,
	snapshots rankings.Repository,
	ids IDResolver,
	intelProvider BatchIntelProvider,
	cfg ValuationConfig,
	logger *logging.Logger,
) *ValuationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ValuationService{
		projections: projections,
		snapshots:   snapshots,
		ids:         ids,
		intel:       intelProvider,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// ComputeValuations scores projection CSVs where present and falls back to
// the curated rankings file for whichever pool is missing.
func (s *ValuationService) ComputeValuations(ctx context.Context) (valuation.Valuations, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.ComputeValuations")
	defer span.End()

	hitterRecords, hittersFromCSV := s.loadPool(ctx, "hitters", s.projections.Hitters)
	pitcherRecords, pitchersFromCSV := s.loadPool(ctx, "pitchers", s.projections.Pitchers)

	out := valuation.Valuations{
		Hitters:  []valuation.Player{},
		Pitchers: []valuation.Player{},
		Source:   valuation.ResolveSource(hittersFromCSV, pitchersFromCSV),
	}
	if hittersFromCSV {
		out.Hitters = valuation.Compute(derive(hitterRecords, valuation.DeriveHitter), s.cfg.Hitters)
	}
	if pitchersFromCSV {
		out.Pitchers = valuation.Compute(derive(pitcherRecords, valuation.DerivePitcher), s.cfg.Pitchers)
	}

	if !hittersFromCSV || !pitchersFromCSV {
		curated, found, err := s.projections.Rankings(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "load curated rankings failed", "error", err)
		}
		if found {
			hitters, pitchers := valuation.FromRankings(curated, s.cfg.Hitters.PositionBonus)
			if !hittersFromCSV && hitters != nil {
				out.Hitters = hitters
			}
			if !pitchersFromCSV && pitchers != nil {
				out.Pitchers = pitchers
			}
		}
	}
	if out.Hitters == nil {
		out.Hitters = []valuation.Player{}
	}
	if out.Pitchers == nil {
		out.Pitchers = []valuation.Player{}
	}

	return out, nil
}

func (s *ValuationService) loadPool(ctx context.Context, pool string, load func(context.Context) ([]valuation.Record, bool, error)) ([]valuation.Record, bool) {
	records, found, err := load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load projections failed", "pool", pool, "error", err)
		return nil, false
	}
	return records, found
}

func derive(records []valuation.Record, fn func(valuation.Record) valuation.Player) []valuation.Player {
	out := make([]valuation.Player, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}

// LookupPlayer returns every hitter then pitcher whose name contains name.
func (s *ValuationService) LookupPlayer(ctx context.Context, name string) ([]valuation.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	v, err := s.ComputeValuations(ctx)
	if err != nil {
		return nil, err
	}
	return valuation.LookupPlayer(name, v.Hitters, v.Pitchers), nil
}

// Rankings lists the top count players of one pool by final z-score.
func (s *ValuationService) Rankings(ctx context.Context, posType string, count int, withIntel bool) (RankingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.Rankings",
		attribute.String("pos_type", posType),
		attribute.Bool("with_intel", withIntel),
	)
	defer span.End()

	playerType, ok := intel.ParsePosType(posType)
	if !ok {
		return RankingsResult{}, fmt.Errorf("%w: pos_type must be B or P", ErrInvalidInput)
	}
	if count <= 0 {
		count = DefaultRankingsCount
	}

	v, err := s.ComputeValuations(ctx)
	if err != nil {
		return RankingsResult{}, err
	}
	pool := v.Hitters
	if playerType == intel.Pitcher {
		pool = v.Pitchers
	}
	sorted := valuation.SortByFinal(pool)
	if len(sorted) > count {
		sorted = sorted[:count]
	}

	result := RankingsResult{
		Source:  v.Source,
		PosType: playerType.PosType(),
		Players: make([]RankedPlayer, 0, len(sorted)),
	}
	names := make([]string, 0, len(sorted))
	for i, p := range sorted {
		row := RankedPlayer{
			Rank:   i + 1,
			Name:   p.Name,
			Team:   p.Team,
			Pos:    p.Pos,
			ZScore: valuation.Round(p.ZFinal, 2),
		}
		if id, ok := s.ids.ResolveMLBID(ctx, p.Name); ok {
			row.MLBID = &id
		}
		result.Players = append(result.Players, row)
		names = append(names, p.Name)
	}

	if withIntel {
		packets := s.enrich(ctx, names)
		for i := range result.Players {
			result.Players[i].Intel = packetFor(packets, result.Players[i].Name)
		}
	}
	return result, nil
}

// Compare lines up two players' z-scores by category. Each name resolves to
// its first match.
func (s *ValuationService) Compare(ctx context.Context, first, second string) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.Compare")
	defer span.End()

	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" {
		return Comparison{}, fmt.Errorf("%w: need two player names", ErrInvalidInput)
	}

	v, err := s.ComputeValuations(ctx)
	if err != nil {
		return Comparison{}, err
	}
	a, err := firstMatch(first, v)
	if err != nil {
		return Comparison{}, err
	}
	b, err := firstMatch(second, v)
	if err != nil {
		return Comparison{}, err
	}

	za, zb := zScoreLabels(a), zScoreLabels(b)
	labels := make(map[string]struct{}, len(za)+len(zb))
	for k := range za {
		labels[k] = struct{}{}
	}
	for k := range zb {
		labels[k] = struct{}{}
	}
	pairs := make(map[string]ZPair, len(labels))
	for label := range labels {
		pairs[label] = ZPair{Player1: za[label], Player2: zb[label]}
	}

	out := Comparison{
		Player1: comparedPlayer(a),
		Player2: comparedPlayer(b),
		ZScores: pairs,
	}
	packets := s.enrich(ctx, []string{a.Name, b.Name})
	out.Player1.Intel = packetFor(packets, a.Name)
	out.Player2.Intel = packetFor(packets, b.Name)
	return out, nil
}

func firstMatch(name string, v valuation.Valuations) (valuation.Player, error) {
	matches := valuation.LookupPlayer(name, v.Hitters, v.Pitchers)
	if len(matches) == 0 {
		return valuation.Player{}, fmt.Errorf("%w: player not found: %s", ErrNotFound, name)
	}
	return matches[0], nil
}

func comparedPlayer(p valuation.Player) ComparedPlayer {
	return ComparedPlayer{Name: p.Name, Type: p.Type, Team: p.Team, Pos: p.Pos}
}

// zScoreLabels flattens a player's scores into labelled values rounded to
// two places: one per counted category plus Total, PosAdj and Final.
func zScoreLabels(p valuation.Player) map[string]float64 {
	out := make(map[string]float64, len(p.Z)+3)
	for k, v := range p.Z {
		out[k] = valuation.Round(v, 2)
	}
	out["Total"] = valuation.Round(p.ZTotal, 2)
	out["PosAdj"] = valuation.Round(p.ZPosAdj, 2)
	out["Final"] = valuation.Round(p.ZFinal, 2)
	return out
}

// Value breaks down every player matching name into raw stats and z-scores.
// No match is an empty list, not an error.
func (s *ValuationService) Value(ctx context.Context, name string) (ValueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.Value")
	defer span.End()

	matches, err := s.LookupPlayer(ctx, name)
	if err != nil {
		return ValueResult{}, err
	}

	out := ValueResult{Players: make([]PlayerValue, 0, len(matches))}
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		raw := make(map[string]float64, len(p.Stats))
		for k, v := range p.Stats {
			raw[k] = valuation.Round(v, 3)
		}
		out.Players = append(out.Players, PlayerValue{
			Name:     p.Name,
			Type:     p.Type,
			Team:     p.Team,
			Pos:      p.Pos,
			RawStats: raw,
			ZScores:  zScoreLabels(p),
		})
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return out, nil
	}

	packets := s.enrich(ctx, names)
	for i := range out.Players {
		out.Players[i].Intel = packetFor(packets, out.Players[i].Name)
	}
	return out, nil
}

// Generate writes the full ranked export and records it as a snapshot.
func (s *ValuationService) Generate(ctx context.Context) (GenerateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.Generate")
	defer span.End()

	v, err := s.ComputeValuations(ctx)
	if err != nil {
		return GenerateResult{}, err
	}
	if v.Source == valuation.SourceJSON {
		s.logger.WarnContext(ctx, "no projection csv found, generating from curated rankings")
	}

	generated := valuation.Generate(v)
	if err := s.projections.WriteGenerated(ctx, generated); err != nil {
		return GenerateResult{}, fmt.Errorf("write generated rankings: %w", err)
	}

	snapshot := rankings.Snapshot{
		Source:      string(v.Source),
		GeneratedAt: s.now().UTC(),
		Hitters:     s.snapshotEntries(ctx, v.Hitters),
		Pitchers:    s.snapshotEntries(ctx, v.Pitchers),
	}
	saved, err := s.snapshots.Save(ctx, snapshot)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("save rankings snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "generated rankings",
		"source", string(v.Source),
		"hitters", len(generated.Hitters),
		"pitchers", len(generated.Pitchers),
		"snapshot_id", saved.ID,
	)

	return GenerateResult{
		Source:      v.Source,
		Hitters:     len(generated.Hitters),
		Pitchers:    len(generated.Pitchers),
		SnapshotID:  saved.ID,
		GeneratedAt: saved.GeneratedAt,
	}, nil
}

func (s *ValuationService) snapshotEntries(ctx context.Context, players []valuation.Player) []rankings.Entry {
	sorted := valuation.SortByFinal(players)
	out := make([]rankings.Entry, 0, len(sorted))
	for i, p := range sorted {
		scores := make(map[string]float64, len(p.Z))
		for k, v := range p.Z {
			scores[k] = valuation.Round(v, 2)
		}
		entry := rankings.Entry{
			Rank:    i + 1,
			Name:    p.Name,
			Team:    p.Team,
			Pos:     p.Pos,
			ZScore:  valuation.Round(p.ZFinal, 2),
			ZScores: scores,
		}
		if id, ok := s.ids.KnownMLBID(ctx, p.Name); ok {
			entry.MLBID = &id
		}
		out = append(out, entry)
	}
	return out
}

// LatestSnapshot returns the most recently generated rankings.
func (s *ValuationService) LatestSnapshot(ctx context.Context) (rankings.Snapshot, error) {
	snapshot, found, err := s.snapshots.Latest(ctx)
	if err != nil {
		return rankings.Snapshot{}, fmt.Errorf("get latest rankings snapshot: %w", err)
	}
	if !found {
		return rankings.Snapshot{}, fmt.Errorf("%w: no rankings generated yet", ErrNotFound)
	}
	return snapshot, nil
}

// enrich attaches statcast and trends; a failure only drops the enrichment.
func (s *ValuationService) enrich(ctx context.Context, names []string) map[string]intel.Packet {
	if s.intel == nil || len(names) == 0 {
		return nil
	}
	packets, err := s.intel.BatchIntel(ctx, names, []intel.Section{intel.SectionStatcast, intel.SectionTrends})
	if err != nil {
		s.logger.WarnContext(ctx, "intel enrichment failed", "players", len(names), "error", err)
		return nil
	}
	return packets
}

func packetFor(packets map[string]intel.Packet, name string) *intel.Packet {
	packet, ok := packets[name]
	if !ok {
		return nil
	}
	return &packet
}

// SortedLabels orders comparison labels for display.
func SortedLabels(pairs map[string]ZPair) []string {
	out := make([]string, 0, len(pairs))
	for k := range pairs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
