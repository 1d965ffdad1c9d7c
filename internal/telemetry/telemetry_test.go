package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestContextHandlerAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).With("svc", "admin")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, sc.TraceID().String(), rec["trace_id"])
	assert.Equal(t, sc.SpanID().String(), rec["span_id"])
	assert.Equal(t, "admin", rec["svc"])
}

func TestContextHandlerWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))
	l.Info("plain")

	assert.NotContains(t, buf.String(), "trace_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupTracerDisabled(t *testing.T) {
	shutdown, err := SetupTracer(context.Background(), TracerConfig{ServiceName: "x"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "collector:4317", stripScheme("http://collector:4317"))
	assert.Equal(t, "collector:4317", stripScheme(" https://collector:4317 "))
	assert.Equal(t, "collector:4317", stripScheme("collector:4317"))
}
