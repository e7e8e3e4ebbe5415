package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-baseball/internal/config"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNew_AssemblesRouter(t *testing.T) {
	cfg := testConfig(t)
	cfg.CacheWarmEnabled = true

	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotNil(t, a.Server)
	assert.Equal(t, cfg.HTTPAddr, a.Server.Addr)
	assert.NotNil(t, a.Warmer)

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}

func TestNew_OptionalSurfacesDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = false
	cfg.MCPEnabled = false

	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a.Warmer)

	for _, path := range []string{"/metrics", "/mcp"} {
		rec := httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestValuationConfig(t *testing.T) {
	cfg := config.Config{
		ValuationMinPA:             150,
		ValuationMinIP:             20,
		ValuationBattingCategories: []string{"r", "hr"},
		ValuationPitchingNegative:  []string{"era"},
	}

	got := valuationConfig(cfg)

	assert.Equal(t, []string{"R", "HR"}, got.Hitters.Categories)
	assert.Equal(t, []string{"ERA"}, got.Pitchers.Negative)
	assert.Equal(t, 150.0, got.Hitters.MinPlayingTime)
	assert.Equal(t, 20.0, got.Pitchers.MinPlayingTime)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "https://statsapi.mlb.com/api/v1", orDefault("", "https://statsapi.mlb.com/api/v1"))
	assert.Equal(t, "http://localhost:9000", orDefault("http://localhost:9000", "https://statsapi.mlb.com/api/v1"))
}
