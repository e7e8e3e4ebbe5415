package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ErrorsAreNamedFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Warn("savant fetch failed", "source", "savant", "error", context.DeadlineExceeded)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["source"] != "savant" {
		t.Fatalf("unexpected source field: %v", fields["source"])
	}
	if fields["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
}

func TestLogger_MirrorReceivesEmittedRecordsOnly(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped")
	logger.InfoContext(context.Background(), "kept")

	if len(got) != 1 || got[0] != "info:kept" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
		"fatal":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", in, got, want)
		}
	}
}

func TestLogger_WithAddsFieldsAndNilLoggerFallsBack(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var nilLogger *Logger
	nilLogger.With("source", "reddit").Info("hot fetched", "posts", 50)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["source"] != "reddit" || fields["posts"] != int64(50) {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
