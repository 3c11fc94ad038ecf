// Package pipeline provides the core workflow drawing pipeline for flowdraw.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI and the HTTP API. By centralizing this logic, both
// entry points cache, log and validate the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a workflow file or document and validate its references
//  2. Layout: Break cycles, assign layers and coordinates, route every link
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "workflow.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	g, err := pipeline.Parse(opts)
//
//	// Layout with existing graph
//	l, err := runner.Layout(ctx, g, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"time"

	"github.com/matzehuels/flowdraw/pkg/cache"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	errs "github.com/matzehuels/flowdraw/pkg/errors"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the raster scale factor for PNG output.
const DefaultScale = 2.0

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeFlow

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Workflow takes precedence over Input.
	Input    string          `json:"-"`
	Workflow *graph.Workflow `json:"workflow,omitempty"`

	// Layout options
	VizType     string          `json:"viz_type,omitempty"`
	Geometry    layout.Geometry `json:"geometry"`
	PerLinkCuts bool            `json:"per_link_cuts,omitempty"`
	AllowEmpty  bool            `json:"allow_empty,omitempty"`
	Detailed    bool            `json:"detailed,omitempty"` // nodelink: show id and layer
	Refresh     bool            `json:"refresh,omitempty"`  // skip cache lookups

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Style          string   `json:"style,omitempty"`
	Scale          float64  `json:"scale,omitempty"`
	HidePortLabels bool     `json:"hide_port_labels,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed workflow graph.
	Graph *flow.Graph

	// WorkflowHash is the content hash of the canonical workflow.
	WorkflowHash string

	// Layout contains the serializable layout (positions and paths, or DOT).
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount  int
	LinkCount  int
	CutCount   int
	LayerCount int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errs.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Workflow == nil && o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "workflow or input file is required")
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	o.Geometry = o.Geometry.WithDefaults()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := o.Geometry.Validate(); err != nil {
		return errs.FromLayoutError(err)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return errs.ValidateStyle(o.Style)
}

// IsFlow returns true if this is a flow visualization.
func (o *Options) IsFlow() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeFlow
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:      o.VizType,
		Width:        o.Geometry.Width,
		Padding:      o.Geometry.Padding,
		NodeGap:      o.Geometry.NodeGap,
		CurveFactor:  o.Geometry.CurveFactor,
		ArcClearance: o.Geometry.ArcClearance,
		TaskWidth:    o.Geometry.DefaultTaskWidth,
		TaskHeight:   o.Geometry.DefaultTaskHeight,
		PerLinkCuts:  o.PerLinkCuts,
		Detailed:     o.Detailed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Scale:      o.Scale,
		PortLabels: !o.HidePortLabels,
	}
}
