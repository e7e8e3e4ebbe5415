package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

// IntelProvider is the intelligence surface served under /api/intel and
// /api/mlb.
type IntelProvider interface {
	PlayerIntel(ctx context.Context, name string, sections []intel.Section) (intel.Packet, error)
	BatchIntel(ctx context.Context, names []string, sections []intel.Section) (map[string]intel.Packet, error)
	Breakouts(ctx context.Context, posType string, count int) (intel.Candidates, error)
	Busts(ctx context.Context, posType string, count int) (intel.Candidates, error)
	RedditBuzz(ctx context.Context) intel.Buzz
	Trending(ctx context.Context) intel.Trending
	Prospects(ctx context.Context) intel.ProspectReport
	Transactions(ctx context.Context, days int) intel.TransactionReport
	Injuries(ctx context.Context, days int) intel.TransactionReport
	Teams(ctx context.Context, season int) ([]usecase.MLBTeam, error)
	Schedule(ctx context.Context, day time.Time) ([]usecase.MLBGame, error)
}

// ValuationProvider is the z-score surface served under /api/rankings,
// /api/compare and /api/value.
type ValuationProvider interface {
	Rankings(ctx context.Context, posType string, count int, withIntel bool) (usecase.RankingsResult, error)
	Compare(ctx context.Context, first, second string) (usecase.Comparison, error)
	Value(ctx context.Context, name string) (usecase.ValueResult, error)
	Generate(ctx context.Context) (usecase.GenerateResult, error)
	LatestSnapshot(ctx context.Context) (rankings.Snapshot, error)
}

type Handler struct {
	intel     IntelProvider
	valuation ValuationProvider
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(intelProvider IntelProvider, valuationProvider ValuationProvider, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		intel:     intelProvider,
		valuation: valuationProvider,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
