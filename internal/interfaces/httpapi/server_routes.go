package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-baseball/internal/platform/metrics"
)

type routeRegistrar struct {
	mux     *http.ServeMux
	metrics *metrics.Metrics
}

func (r *routeRegistrar) handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, Instrument(r.metrics, pattern, h))
}

func (r *routeRegistrar) handleFunc(pattern string, fn http.HandlerFunc) {
	r.handle(pattern, fn)
}

func registerSystemRoutes(routes *routeRegistrar, handler *Handler, opts RouterOptions) {
	routes.mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.Metrics != nil {
		routes.mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
	if opts.MCPHandler != nil {
		routes.handle("/mcp", opts.MCPHandler)
	}
	if !opts.SwaggerEnabled {
		return
	}

	routes.mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	routes.mux.HandleFunc("GET /docs", handler.SwaggerUI)
	routes.mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerIntelRoutes(routes *routeRegistrar, handler *Handler) {
	routes.handleFunc("GET /api/intel/player", handler.PlayerIntel)
	routes.handleFunc("GET /api/intel/batch", handler.BatchIntel)
	routes.handleFunc("GET /api/intel/breakouts", handler.Breakouts)
	routes.handleFunc("GET /api/intel/busts", handler.Busts)
	routes.handleFunc("GET /api/intel/reddit", handler.RedditBuzz)
	routes.handleFunc("GET /api/intel/trending", handler.Trending)
	routes.handleFunc("GET /api/intel/prospects", handler.Prospects)
	routes.handleFunc("GET /api/intel/transactions", handler.Transactions)
}

func registerValuationRoutes(routes *routeRegistrar, handler *Handler) {
	routes.handleFunc("GET /api/rankings", handler.Rankings)
	routes.handleFunc("POST /api/rankings/generate", handler.GenerateRankings)
	routes.handleFunc("GET /api/rankings/latest", handler.LatestRankings)
	routes.handleFunc("GET /api/compare", handler.Compare)
	routes.handleFunc("GET /api/value", handler.Value)
}

func registerMLBRoutes(routes *routeRegistrar, handler *Handler) {
	routes.handleFunc("GET /api/mlb/teams", handler.MLBTeams)
	routes.handleFunc("GET /api/mlb/schedule", handler.MLBSchedule)
	routes.handleFunc("GET /api/mlb/injuries", handler.MLBInjuries)
}
