package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/matzehuels/flowdraw/pkg/cache"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	ctx, span := observability.StartSpan(ctx, "flowdraw.execute",
		attribute.String("flowdraw.viz_type", opts.VizType),
		attribute.StringSlice("flowdraw.formats", opts.Formats),
	)
	defer span.End()

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	g, err := Parse(opts)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.TaskCount = g.TaskCount()
	result.Stats.LinkCount = g.LinkCount()

	r.Logger.Debug("parsed workflow",
		"tasks", g.TaskCount(),
		"links", g.LinkCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.WorkflowHash, _ = WorkflowHash(g)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CutCount = l.CutCount()
	result.Stats.LayerCount = len(l.Layers)
	result.CacheInfo.LayoutHit = layoutHit

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and reports whether
// it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *flow.Graph, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	workflowHash, err := WorkflowHash(g)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("hash workflow: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(workflowHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				// Style is a render hint and not part of the layout key.
				cached.Style = opts.Style
				cacheHooks.OnCacheHit(ctx, keyTypeLayout)
				r.Logger.Debug("layout cache hit", "layout_id", cached.LayoutID)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeLayout)
	}

	hooks.OnLayoutStart(ctx, opts.VizType, g.TaskCount())
	start := time.Now()
	l, err := GenerateLayout(g, opts)
	duration := time.Since(start)
	stats := observability.LayoutStats{Tasks: g.TaskCount(), Links: g.LinkCount()}
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.VizType, stats, duration, err)
		return graph.Layout{}, false, err
	}
	l.LayoutID = LayoutID(workflowHash, opts)
	stats.Cut = l.CutCount()
	stats.Layers = len(l.Layers)
	hooks.OnLayoutComplete(ctx, opts.VizType, stats, duration, nil)

	r.Logger.Info("computed layout",
		"tasks", stats.Tasks,
		"links", stats.Links,
		"cut", stats.Cut,
		"layers", stats.Layers,
		"duration", duration)

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *flow.Graph, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	opts = applyLayoutMetadata(opts, l)
	if l.VizType != "" {
		opts.VizType = l.VizType
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, l, opts)
	duration := time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, duration, err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", duration)

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
