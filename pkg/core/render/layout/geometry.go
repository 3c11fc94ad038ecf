package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

// Default geometry values.
const (
	DefaultWidth        = 800.0
	DefaultPadding      = 50.0
	DefaultNodeGap      = 50.0
	DefaultCurveFactor  = 0.4
	DefaultArcClearance = 80.0
	DefaultTaskWidth    = 150.0
	DefaultTaskHeight   = 60.0
)

// ErrInvalidGeometry is returned by [Geometry.Validate].
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry holds the canvas and routing parameters for one layout run.
type Geometry struct {
	Width   float64 `json:"width" mapstructure:"width"`
	Padding float64 `json:"padding" mapstructure:"padding"`
	NodeGap float64 `json:"node_gap" mapstructure:"node_gap"`

	// CurveFactor scales |Δx| into the horizontal control offset of
	// forward curves.
	CurveFactor float64 `json:"curve_factor" mapstructure:"curve_factor"`

	// ArcClearance is the distance of back-arc control points above the
	// highest box edge.
	ArcClearance float64 `json:"arc_clearance" mapstructure:"arc_clearance"`

	DefaultTaskWidth  float64 `json:"default_task_width" mapstructure:"default_task_width"`
	DefaultTaskHeight float64 `json:"default_task_height" mapstructure:"default_task_height"`
}

// DefaultGeometry returns the stock geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:             DefaultWidth,
		Padding:           DefaultPadding,
		NodeGap:           DefaultNodeGap,
		CurveFactor:       DefaultCurveFactor,
		ArcClearance:      DefaultArcClearance,
		DefaultTaskWidth:  DefaultTaskWidth,
		DefaultTaskHeight: DefaultTaskHeight,
	}
}

// WithDefaults returns g with the stock geometry substituted for the zero
// value and the default task size filled in where it is zero. Other zero
// fields are kept: a zero padding or curve factor is a valid choice.
func (g Geometry) WithDefaults() Geometry {
	if g == (Geometry{}) {
		return DefaultGeometry()
	}
	if g.DefaultTaskWidth == 0 {
		g.DefaultTaskWidth = DefaultTaskWidth
	}
	if g.DefaultTaskHeight == 0 {
		g.DefaultTaskHeight = DefaultTaskHeight
	}
	return g
}

// Validate reports the first unusable field.
func (g Geometry) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"width", g.Width},
		{"padding", g.Padding},
		{"node gap", g.NodeGap},
		{"curve factor", g.CurveFactor},
		{"arc clearance", g.ArcClearance},
		{"default task width", g.DefaultTaskWidth},
		{"default task height", g.DefaultTaskHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidGeometry, f.name, f.v)
		}
	}

	switch {
	case g.Width < 0:
		return fmt.Errorf("%w: width %v is negative", ErrInvalidGeometry, g.Width)
	case g.Padding < 0:
		return fmt.Errorf("%w: padding %v is negative", ErrInvalidGeometry, g.Padding)
	case g.Width < 2*g.Padding:
		return fmt.Errorf("%w: width %v is smaller than twice the padding %v", ErrInvalidGeometry, g.Width, g.Padding)
	case g.NodeGap < 0:
		return fmt.Errorf("%w: node gap %v is negative", ErrInvalidGeometry, g.NodeGap)
	case g.CurveFactor < 0:
		return fmt.Errorf("%w: curve factor %v is negative", ErrInvalidGeometry, g.CurveFactor)
	case g.DefaultTaskWidth <= 0 || g.DefaultTaskHeight <= 0:
		return fmt.Errorf("%w: default task size must be positive", ErrInvalidGeometry)
	}
	return nil
}

// SizeOf returns the box size of t, substituting the default width or
// height for a zero or negative value.
func (g Geometry) SizeOf(t *flow.Task) flow.Size {
	s := t.Size
	if s.W <= 0 {
		s.W = g.DefaultTaskWidth
	}
	if s.H <= 0 {
		s.H = g.DefaultTaskHeight
	}
	return s
}
