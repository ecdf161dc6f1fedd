package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContextFallback(t *testing.T) {
	if LoggerFromContext(context.Background()) == nil {
		t.Fatal("expected global logger for bare context")
	}
	if LoggerFromContext(nil) == nil { //nolint:staticcheck
		t.Fatal("expected global logger for nil context")
	}
}

func TestLoggerFromContextScoped(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	scoped := zap.New(core)

	ctx := contextWithLogger(context.Background(), scoped)
	if LoggerFromContext(ctx) != scoped {
		t.Fatal("expected the request-scoped logger")
	}
}

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil trace ID, got %q", *got)
	}

	ctx := contextWithTraceID(context.Background(), "trace-abc")
	got := TraceIDFromContext(ctx)
	if got == nil || *got != "trace-abc" {
		t.Fatalf("expected trace-abc, got %v", got)
	}
}

func TestContextWithTraceIDEmpty(t *testing.T) {
	ctx := contextWithTraceID(context.Background(), "")
	if got := TraceIDFromContext(ctx); got != nil {
		t.Fatalf("expected empty trace ID to be dropped, got %q", *got)
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogError(ctx, "something failed", context.DeadlineExceeded)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
}
