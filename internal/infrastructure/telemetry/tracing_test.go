package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs an in-memory span recorder as the global provider
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(attrs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value.Emit()
	}
	return out
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)
	id := uuid.New()

	ctx, span := telemetry.StartServiceSpan(context.Background(), "invoice", "post",
		telemetry.SpanAttrReference, "INV-2024-0001",
		telemetry.SpanAttrAggregateID, id,
		telemetry.SpanAttrEntries, 3,
		42, "ignored key",
	)
	assert.NotEmpty(t, telemetry.TraceID(ctx))
	assert.NotEmpty(t, telemetry.SpanID(ctx))
	telemetry.SetAttributes(span, telemetry.SpanAttrStatus, "posted")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "invoice.post", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "INV-2024-0001", attrs[telemetry.SpanAttrReference])
	assert.Equal(t, id.String(), attrs[telemetry.SpanAttrAggregateID])
	assert.Equal(t, "3", attrs[telemetry.SpanAttrEntries])
	assert.Equal(t, "posted", attrs[telemetry.SpanAttrStatus])
	assert.Len(t, attrs, 4)
}

func TestEndSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, ok := telemetry.StartSpan(context.Background(), "payroll.process")
	telemetry.EndSpan(ok, nil)

	_, failed := telemetry.StartSpan(context.Background(), "payroll.approve")
	telemetry.EndSpan(failed, errors.New("run is not processed"))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "run is not processed", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "exception", spans[1].Events()[0].Name)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, telemetry.TraceID(context.Background()))
	assert.Empty(t, telemetry.SpanID(context.Background()))
}

func TestSpanHelpers_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
	})
}
