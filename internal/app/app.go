package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-baseball/external/fangraphs"
	"github.com/riskibarqy/fantasy-baseball/external/mlbstats"
	"github.com/riskibarqy/fantasy-baseball/external/reddit"
	"github.com/riskibarqy/fantasy-baseball/external/savant"
	"github.com/riskibarqy/fantasy-baseball/external/upstream"
	"github.com/riskibarqy/fantasy-baseball/internal/config"
	"github.com/riskibarqy/fantasy-baseball/internal/domain/rankings"
	cacherepo "github.com/riskibarqy/fantasy-baseball/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-baseball/internal/infrastructure/repository/file"
	"github.com/riskibarqy/fantasy-baseball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-baseball/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-baseball/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-baseball/internal/interfaces/mcptool"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/cache"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

// App is the assembled service: the HTTP server plus the background pieces
// whose lifecycle cmd/api drives.
type App struct {
	Server *http.Server
	Warmer *usecase.CacheWarmer

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}
	season := cfg.Season(time.Now())

	statcast := savant.NewClient(
		newFetcher(cfg, "savant", orDefault(cfg.SavantBaseURL, savant.DefaultBaseURL), m, logger),
		cache.NewStore("savant", cache.WithMetrics(m)),
		cfg.SavantCacheTTL,
	)
	discipline := fangraphs.NewClient(
		newFetcher(cfg, "fangraphs", orDefault(cfg.FanGraphsBaseURL, fangraphs.DefaultBaseURL), m, logger),
		cache.NewStore("fangraphs", cache.WithMetrics(m)),
		cfg.FanGraphsCacheTTL,
	)
	social := reddit.NewClient(
		newFetcher(cfg, "reddit", orDefault(cfg.RedditBaseURL, reddit.DefaultBaseURL), m, logger),
		cache.NewStore("reddit", cache.WithMetrics(m)),
		cfg.RedditCacheTTL,
	)
	mlb := mlbstats.NewClient(
		newFetcher(cfg, "mlbstats", orDefault(cfg.MLBStatsBaseURL, mlbstats.DefaultBaseURL), m, logger),
		cache.NewStore("mlbstats", cache.WithMetrics(m)),
		cfg.MLBCacheTTL,
	)

	a := &App{}
	snapshots, err := a.rankingsRepository(ctx, cfg, m, logger)
	if err != nil {
		return nil, err
	}

	identity := usecase.NewIdentityService(file.NewIDCacheRepository(cfg.DataDir), mlb, season, logger)
	intelSvc := usecase.NewIntelService(
		identity,
		statcast,
		discipline,
		social,
		mlb,
		usecase.IntelConfig{Season: season, BatchWorkers: cfg.BatchWorkers},
		m,
		logger,
	)
	valuationSvc := usecase.NewValuationService(
		file.NewProjectionRepository(cfg.DataDir, season),
		snapshots,
		identity,
		intelSvc,
		valuationConfig(cfg),
		logger,
	)

	if cfg.CacheWarmEnabled {
		a.Warmer = usecase.NewCacheWarmer(statcast, discipline, social, cfg.CacheWarmSchedule, season, logger)
	}

	var mcpHandler http.Handler
	if cfg.MCPEnabled {
		tools := mcptool.NewTools(intelSvc, valuationSvc, logger)
		mcpHandler = mcptool.NewHTTPHandler(mcptool.NewServer(tools, cfg.ServiceVersion))
	}

	handler := httpapi.NewHandler(intelSvc, valuationSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		Metrics:            m,
		MCPHandler:         mcpHandler,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app assembled",
		"season", season,
		"rankings_store", cfg.RankingsStore,
		"metrics_enabled", cfg.MetricsEnabled,
		"mcp_enabled", cfg.MCPEnabled,
		"cache_warm_enabled", cfg.CacheWarmEnabled,
	)

	return a, nil
}

// Close releases resources opened by New.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) rankingsRepository(ctx context.Context, cfg config.Config, m *metrics.Metrics, logger *logging.Logger) (rankings.Repository, error) {
	var base rankings.Repository
	switch cfg.RankingsStore {
	case config.RankingsStorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		base = postgres.NewRankingsRepository(db)
		logger.Info("rankings store connected", "db_name", dbNameFromURL(cfg.DBURL))
	default:
		base = memory.NewRankingsRepository()
	}

	return cacherepo.NewRankingsRepository(base, cache.NewStore("rankings", cache.WithMetrics(m)), cfg.RankingsCacheTTL), nil
}

func newFetcher(cfg config.Config, source, baseURL string, m *metrics.Metrics, logger *logging.Logger) *upstream.Client {
	return upstream.NewClient(upstream.Config{
		Source:         source,
		BaseURL:        baseURL,
		UserAgent:      cfg.UpstreamUserAgent,
		Timeout:        cfg.UpstreamTimeout,
		MaxRetries:     cfg.UpstreamMaxRetries,
		Logger:         logger,
		Metrics:        m,
		CircuitBreaker: cfg.UpstreamCircuit,
	})
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func valuationConfig(cfg config.Config) usecase.ValuationConfig {
	out := usecase.DefaultValuationConfig()
	out.Hitters = out.Hitters.WithCategories(cfg.ValuationBattingCategories, cfg.ValuationBattingNegative)
	out.Pitchers = out.Pitchers.WithCategories(cfg.ValuationPitchingCategories, cfg.ValuationPitchingNegative)
	out.Hitters.MinPlayingTime = cfg.ValuationMinPA
	out.Pitchers.MinPlayingTime = cfg.ValuationMinIP
	return out
}
