// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTL. The
// CLI uses [FileCache] under the user cache directory; the API server can
// share a [RedisCache] or [MongoCache] between replicas. [NullCache]
// disables caching.
//
// Keys are produced by a [Keyer] from a content hash of the workflow plus
// every option that changes the output, so equal inputs share entries.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is implemented by every cache backend.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	VizType      string  `json:"viz_type"`
	Width        float64 `json:"width"`
	Padding      float64 `json:"padding"`
	NodeGap      float64 `json:"node_gap"`
	CurveFactor  float64 `json:"curve_factor"`
	ArcClearance float64 `json:"arc_clearance"`
	TaskWidth    float64 `json:"task_width"`
	TaskHeight   float64 `json:"task_height"`
	PerLinkCuts  bool    `json:"per_link_cuts"`
	Detailed     bool    `json:"detailed"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Scale      float64 `json:"scale"`
	PortLabels bool    `json:"port_labels"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the workflow
	// with the given content hash.
	LayoutKey(workflowHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256(hash, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(workflowHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", workflowHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
