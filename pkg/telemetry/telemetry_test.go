package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingProvider(t *testing.T) (*Provider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	p, err := NewProvider(Config{ServiceName: "test", SampleRate: 1}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { p.Shutdown(context.Background()) })
	return p, exporter
}

func TestInit_Disabled(t *testing.T) {
	provider, err := Init(context.Background(), Config{Enabled: false, ServiceName: "test"})
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer(), "tracer should not be nil even when disabled")
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestInit_Enabled(t *testing.T) {
	t.Cleanup(func() { globalProvider = nil })

	provider, err := Init(context.Background(), Config{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		ServiceName: "router-svc",
		SampleRate:  1,
	})
	require.NoError(t, err)
	assert.Same(t, provider, Get())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = provider.Shutdown(ctx)
}

func TestGet_Uninitialized(t *testing.T) {
	globalProvider = nil

	provider := Get()
	require.NotNil(t, provider)
	assert.NotNil(t, provider.tracer)
}

func TestStartSpan_Noop(t *testing.T) {
	globalProvider = nil

	_, span := StartSpan(context.Background(), "test-span")
	require.NotNil(t, span)
	span.End()
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestProvider_RecordsSpanWithAttributes(t *testing.T) {
	p, exporter := newRecordingProvider(t)
	globalProvider = p
	t.Cleanup(func() { globalProvider = nil })

	ctx, span := StartSpan(context.Background(), "router.shortest_path",
		WithAttributes(QueryAttributes("shortest", 1, 3)...))
	SetAttributes(ctx, RouteAttributes(3, 5)...)
	AddEvent(ctx, "cache.miss")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "router.shortest_path", got.Name)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "shortest", attrs[AttrQueryKind].AsString())
	assert.Equal(t, int64(3), attrs[AttrQueryTarget].AsInt64())
	assert.Equal(t, int64(5), attrs[AttrDistance].AsInt64())
	require.Len(t, got.Events, 1)
	assert.Equal(t, "cache.miss", got.Events[0].Name)
}

func TestNewProvider_Resource(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	p, err := NewProvider(Config{
		ServiceName: "router-svc",
		Version:     "1.2.3",
		Environment: "test",
		SampleRate:  1,
	}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err, "service attributes must merge with the SDK default resource")
	t.Cleanup(func() { p.Shutdown(context.Background()) })

	_, span := p.Tracer().Start(context.Background(), "resource")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.NotNil(t, spans[0].Resource)

	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "router-svc", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
	assert.Equal(t, "test", attrs["deployment.environment"])
	assert.Equal(t, "go", attrs["telemetry.sdk.language"])
}

func TestSetError(t *testing.T) {
	p, exporter := newRecordingProvider(t)

	ctx, span := p.Tracer().Start(context.Background(), "failing")
	SetError(ctx, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
}

func TestRecordError_KeepsStatus(t *testing.T) {
	p, exporter := newRecordingProvider(t)

	ctx, span := p.Tracer().Start(context.Background(), "unreachable")
	RecordError(ctx, errors.New("no path"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1)
}

func TestAttributeHelpers(t *testing.T) {
	assert.Len(t, NetworkAttributes(4, 3, 1, "abc"), 4)
	assert.Len(t, HeapAttributes(1, 2, 3), 3)
}
