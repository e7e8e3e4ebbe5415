package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
)

func TestSkipMirroredLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health probe", msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http request", args: []any{"path", "/metrics"}, want: true},
		{name: "api request", msg: "http request", args: []any{"path", "/api/intel/player"}},
		{name: "other message", msg: "cache warm failed", args: []any{"path", "/healthz"}},
		{name: "non-string path", msg: "http request", args: []any{"path", 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skipMirroredLog(tt.msg, tt.args))
		})
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"source", "savant", 7, 2, "payload"})
	require.Len(t, attrs, 3)

	assert.Equal(t, "source", attrs[0].Key)
	assert.Equal(t, "savant", attrs[0].Value.AsString())
	assert.Equal(t, "arg_1", attrs[1].Key)
	assert.Equal(t, int64(2), attrs[1].Value.AsInt64())
	assert.Equal(t, "payload", attrs[2].Key)
	assert.Equal(t, otellog.KindEmpty, attrs[2].Value.Kind())
}

func TestToOTelLogValue(t *testing.T) {
	hr := 58
	var missing *int

	assert.Equal(t, otellog.KindInt64, toOTelLogValue(int16(7), 0).Kind())
	assert.Equal(t, otellog.KindString, toOTelLogValue(uint64(1<<63), 0).Kind())
	assert.Equal(t, 0.5, toOTelLogValue(float32(0.5), 0).AsFloat64())
	assert.Equal(t, int64(58), toOTelLogValue(&hr, 0).AsInt64())
	assert.Equal(t, otellog.KindEmpty, toOTelLogValue(missing, 0).Kind())
	assert.Equal(t, "1.5s", toOTelLogValue(1500*time.Millisecond, 0).AsString())
	assert.Equal(t, "boom", toOTelLogValue(errors.New("boom"), 0).AsString())

	m := toOTelLogValue(map[string]any{"hr": 58, "elite": true}, 0)
	require.Equal(t, otellog.KindMap, m.Kind())
	items := m.AsMap()
	require.Len(t, items, 2)
	assert.Equal(t, "elite", items[0].Key)

	nested := toOTelLogValue([]any{[]any{[]any{[]any{1}}}}, 0)
	inner := nested.AsSlice()[0].AsSlice()[0].AsSlice()[0]
	assert.Equal(t, otellog.KindString, inner.Kind(), "depth limit stringifies")
}

func TestNewLogRecord(t *testing.T) {
	at := time.Date(2026, 4, 2, 19, 5, 0, 0, time.UTC)
	record := newLogRecord(at, logging.LevelWarn, "upstream retry", []any{"source", "fangraphs"})

	assert.Equal(t, at, record.Timestamp())
	assert.Equal(t, otellog.SeverityWarn, record.Severity())
	assert.Equal(t, "WARN", record.SeverityText())
	assert.Equal(t, "upstream retry", record.Body().AsString())
	assert.Equal(t, 1, record.AttributesLen())
}
