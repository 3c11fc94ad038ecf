package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of flowdraw spans.
const TracerName = "github.com/matzehuels/flowdraw"

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP gRPC endpoint, e.g. "localhost:4317".
	// If empty, tracing is disabled.
	Endpoint string
	Insecure bool

	// SampleRatio is the fraction of traces kept, in [0, 1].
	SampleRatio float64
}

// TracerProvider wraps the OpenTelemetry tracer provider.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing sets up an OTLP exporter and installs it as the global
// tracer provider. With an empty endpoint it returns a provider backed by
// the global no-op tracer.
func InitTracing(ctx context.Context, cfg TracingConfig) (*TracerProvider, error) {
	if cfg.Endpoint == "" {
		return &TracerProvider{tracer: otel.Tracer(TracerName)}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &TracerProvider{
		provider: provider,
		tracer:   provider.Tracer(TracerName),
	}, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Shutdown flushes pending spans and stops the exporter.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider != nil {
		return tp.provider.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the underlying tracer.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// Register installs [OTelHooks] backed by tp for every hook category.
func (tp *TracerProvider) Register() {
	h := &OTelHooks{tracer: tp.tracer}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// StartSpan starts an internal span on the global tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records err on span and marks it failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// =============================================================================
// OpenTelemetry Hooks
// =============================================================================

// OTelHooks turns hook events into spans and span events.
//
// Completion events become spans back-dated by their duration. Start and
// cache events are added to the span already in ctx, if any.
type OTelHooks struct {
	tracer trace.Tracer
}

// NewOTelHooks returns hooks that trace through tp.
func NewOTelHooks(tp trace.TracerProvider) *OTelHooks {
	return &OTelHooks{tracer: tp.Tracer(TracerName)}
}

func (h *OTelHooks) span(ctx context.Context, name string, kind trace.SpanKind, d time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, name,
		trace.WithSpanKind(kind),
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(attrs...),
	)
	RecordError(span, err)
	span.End(trace.WithTimestamp(end))
}

func (h *OTelHooks) OnLayoutStart(ctx context.Context, vizType string, taskCount int) {
	trace.SpanFromContext(ctx).AddEvent("layout.start", trace.WithAttributes(
		attribute.String("flowdraw.viz_type", vizType),
		attribute.Int("flowdraw.tasks", taskCount),
	))
}

func (h *OTelHooks) OnLayoutComplete(ctx context.Context, vizType string, stats LayoutStats, d time.Duration, err error) {
	h.span(ctx, "flowdraw.layout", trace.SpanKindInternal, d, err,
		attribute.String("flowdraw.viz_type", vizType),
		attribute.Int("flowdraw.tasks", stats.Tasks),
		attribute.Int("flowdraw.links", stats.Links),
		attribute.Int("flowdraw.cut", stats.Cut),
		attribute.Int("flowdraw.layers", stats.Layers),
	)
}

func (h *OTelHooks) OnRenderStart(ctx context.Context, formats []string) {
	trace.SpanFromContext(ctx).AddEvent("render.start", trace.WithAttributes(
		attribute.StringSlice("flowdraw.formats", formats),
	))
}

func (h *OTelHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.span(ctx, "flowdraw.render", trace.SpanKindInternal, d, err,
		attribute.StringSlice("flowdraw.formats", formats),
	)
}

func (h *OTelHooks) OnCacheHit(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.hit", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *OTelHooks) OnCacheMiss(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.miss", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *OTelHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	trace.SpanFromContext(ctx).AddEvent("cache.set", trace.WithAttributes(
		attribute.String("cache.key_type", keyType),
		attribute.Int("cache.size", size),
	))
}

func (h *OTelHooks) OnRequest(ctx context.Context, method, route string) {
	trace.SpanFromContext(ctx).AddEvent("http.request", trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
	))
}

func (h *OTelHooks) OnResponse(ctx context.Context, method, route string, statusCode int, d time.Duration) {
	h.span(ctx, method+" "+route, trace.SpanKindServer, d, nil,
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", statusCode),
	)
}

func (h *OTelHooks) OnError(ctx context.Context, method, route string, err error) {
	RecordError(trace.SpanFromContext(ctx), err)
}

var (
	_ PipelineHooks = (*OTelHooks)(nil)
	_ CacheHooks    = (*OTelHooks)(nil)
	_ HTTPHooks     = (*OTelHooks)(nil)
)
