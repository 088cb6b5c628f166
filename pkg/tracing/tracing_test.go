package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp, err := NewProvider(context.Background(), Options{ServiceName: "bookshop-test"}, sdktrace.WithSpanProcessor(rec))
	require.NoError(t, err)

	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(Options{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, otel.GetTextMapPropagator())
}

func TestInitTracer_RequiresEndpoint(t *testing.T) {
	_, err := InitTracer(Options{Enabled: true, ServiceName: "x"})
	assert.Error(t, err)
}

func TestStartSpan_ParentChild(t *testing.T) {
	rec := useRecorder(t)

	ctx, parent := StartSpan(context.Background(), "test", "parent")
	traceID := ExtractTraceID(ctx)
	_, child := StartSpan(ctx, "test", "child")
	child.SetAttributes(attribute.Int("item_count", 2))
	child.End()
	parent.End()

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name())
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("item_count", 2))
}

func TestRecordError(t *testing.T) {
	rec := useRecorder(t)

	_, span := StartSpan(context.Background(), "test", "failing")
	RecordError(span, nil)
	RecordError(span, errors.New("insufficient stock"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "insufficient stock", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractIDs_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))
}

func TestExtractSpanID(t *testing.T) {
	useRecorder(t)
	ctx, span := StartSpan(context.Background(), "test", "op")
	defer span.End()

	assert.Len(t, ExtractSpanID(ctx), 16)
	assert.Len(t, ExtractTraceID(ctx), 32)
}
