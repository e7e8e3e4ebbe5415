package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CacheCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.CacheHit("savant")
	m.CacheHit("savant")
	m.CacheMiss("savant")

	if got := testutil.ToFloat64(m.cacheHits.WithLabelValues("savant")); got != 2 {
		t.Fatalf("unexpected hits: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.cacheMisses.WithLabelValues("savant")); got != 1 {
		t.Fatalf("unexpected misses: got=%v want=1", got)
	}
}

func TestMetrics_UpstreamRequestByOutcome(t *testing.T) {
	t.Parallel()

	m := New()
	m.UpstreamRequest("mlb", "ok", 20*time.Millisecond)
	m.UpstreamRequest("mlb", "error", 40*time.Millisecond)
	m.UpstreamRequest("mlb", "ok", 10*time.Millisecond)

	if got := testutil.ToFloat64(m.upstreamRequests.WithLabelValues("mlb", "ok")); got != 2 {
		t.Fatalf("unexpected ok count: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.upstreamRequests.WithLabelValues("mlb", "error")); got != 1 {
		t.Fatalf("unexpected error count: got=%v want=1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.CacheHit("x")
	m.HTTPRequest("GET", "/healthz", 200, time.Millisecond)
	if m.Registry() != nil {
		t.Fatalf("expected nil registry for nil metrics")
	}
}

func TestStatusClass(t *testing.T) {
	t.Parallel()

	cases := map[int]string{200: "2xx", 204: "2xx", 302: "3xx", 404: "4xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("statusClass(%d) got=%s want=%s", status, got, want)
		}
	}
}
