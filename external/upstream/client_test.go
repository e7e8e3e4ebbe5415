package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(Config{
		Source:         "test",
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_GetJSON_SendsUserAgentAndDecodes(t *testing.T) {
	t.Parallel()

	var gotAgent, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"name":"Juan Soto","id":665742}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	var out struct {
		Name string `json:"name"`
		ID   int64  `json:"id"`
	}
	if err := client.GetJSON(context.Background(), "/people", map[string]string{"year": "2026", "type": "batter"}, &out); err != nil {
		t.Fatalf("GetJSON error: %v", err)
	}
	if out.Name != "Juan Soto" || out.ID != 665742 {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if gotAgent != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", gotAgent)
	}
	if gotQuery != "type=batter&year=2026" {
		t.Fatalf("expected sorted query, got %q", gotQuery)
	}
}

func TestClient_GetBytes_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1, resilience.CircuitBreakerConfig{})
	raw, err := client.GetBytes(context.Background(), "/csv", nil)
	if err != nil {
		t.Fatalf("GetBytes error: %v", err)
	}
	if string(raw) != "ok" || calls.Load() != 2 {
		t.Fatalf("unexpected result body=%q calls=%d", raw, calls.Load())
	}
}

func TestClient_GetBytes_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3, resilience.CircuitBreakerConfig{})
	_, err := client.GetBytes(context.Background(), "/missing", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
	if !strings.Contains(err.Error(), "status=404") || !strings.HasSuffix(err.Error(), "...") {
		t.Fatalf("expected abbreviated status error, got %v", err)
	}
	if isCircuitFailure(err) {
		t.Fatalf("client errors must not count as circuit failures")
	}
}

func TestClient_GetBytes_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(strings.Repeat("a,b\n", maxBodyBytes/4+1)))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2, resilience.CircuitBreakerConfig{})
	raw, err := client.GetBytes(context.Background(), "/leaderboard.csv", nil)
	if !errors.Is(err, errBodyTooLarge) {
		t.Fatalf("expected body too large error, got %v", err)
	}
	if raw != nil {
		t.Fatalf("expected no partial body, got %d bytes", len(raw))
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestClient_GetBytes_AcceptsBodyAtLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", maxBodyBytes)))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	raw, err := client.GetBytes(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("GetBytes error: %v", err)
	}
	if len(raw) != maxBodyBytes {
		t.Fatalf("unexpected body size: got=%d want=%d", len(raw), maxBodyBytes)
	}
}

func TestClient_GetBytes_OpenCircuitReturnsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if _, err := client.GetBytes(context.Background(), "/x", nil); err == nil || !isCircuitFailure(err) {
		t.Fatalf("expected transient failure, got %v", err)
	}
	_, err := client.GetBytes(context.Background(), "/x", nil)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("open circuit must not reach upstream, calls=%d", calls.Load())
	}
}
