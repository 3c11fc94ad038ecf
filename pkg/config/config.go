// Package config loads flowdraw settings from an optional TOML file and
// FLOWDRAW_* environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. Nested keys map to variables by upper-casing and joining
// with underscores, so geometry.node_gap is FLOWDRAW_GEOMETRY_NODE_GAP.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/flowdraw/pkg/cache"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FLOWDRAW"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheMongo = "mongo"
	CacheNone  = "none"
)

// Config holds all application configuration.
type Config struct {
	Geometry layout.Geometry `mapstructure:"geometry"`
	Render   RenderConfig    `mapstructure:"render"`
	Cache    CacheConfig     `mapstructure:"cache"`
	Server   ServerConfig    `mapstructure:"server"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Log      LogConfig       `mapstructure:"log"`
}

type RenderConfig struct {
	Style      string  `mapstructure:"style"`
	Scale      float64 `mapstructure:"scale"`
	PortLabels bool    `mapstructure:"port_labels"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	Prefix  string        `mapstructure:"prefix"`
	TTL     time.Duration `mapstructure:"ttl"`

	RedisURL        string `mapstructure:"redis_url"`
	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	MaxTasks     int           `mapstructure:"max_tasks"`
	MaxLinks     int           `mapstructure:"max_links"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Timestamps bool   `mapstructure:"timestamps"`
}

func setDefaults(v *viper.Viper) {
	geo := layout.DefaultGeometry()
	v.SetDefault("geometry.width", geo.Width)
	v.SetDefault("geometry.padding", geo.Padding)
	v.SetDefault("geometry.node_gap", geo.NodeGap)
	v.SetDefault("geometry.curve_factor", geo.CurveFactor)
	v.SetDefault("geometry.arc_clearance", geo.ArcClearance)
	v.SetDefault("geometry.default_task_width", geo.DefaultTaskWidth)
	v.SetDefault("geometry.default_task_height", geo.DefaultTaskHeight)

	v.SetDefault("render.style", graph.StyleSimple)
	v.SetDefault("render.scale", 2.0)
	v.SetDefault("render.port_labels", true)

	v.SetDefault("cache.backend", CacheFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.prefix", "flowdraw:")
	v.SetDefault("cache.ttl", cache.TTLLayout)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("cache.mongo_database", "flowdraw")
	v.SetDefault("cache.mongo_collection", cache.DefaultMongoCollection)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_tasks", 2000)
	v.SetDefault("server.max_links", 10000)
	v.SetDefault("server.max_body_bytes", 4<<20)
	v.SetDefault("server.timeout", 30*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.service_name", "flowdraw")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.timestamps", true)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err) // defaults always decode
	}
	return &cfg
}

// Load reads configuration from the file at path and the environment.
//
// With an empty path, flowdraw.toml is looked up in the working directory
// and then in the user config directory; a missing file is not an error.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flowdraw")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "flowdraw"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks configuration for issues and returns warnings.
// Fatal problems are reported later by the component that uses the value.
func (c *Config) Validate() []string {
	var warnings []string

	if err := c.Geometry.Validate(); err != nil {
		warnings = append(warnings, err.Error())
	}

	switch c.Render.Style {
	case graph.StyleSimple, graph.StyleOutline:
	default:
		warnings = append(warnings, fmt.Sprintf("render style '%s' is unknown", c.Render.Style))
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 10 {
		warnings = append(warnings, fmt.Sprintf("render scale %.2f is outside recommended range (0, 10]", c.Render.Scale))
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			warnings = append(warnings, "cache backend 'redis' is configured but redis_url is empty")
		}
	case CacheMongo:
		if c.Cache.MongoURI == "" {
			warnings = append(warnings, "cache backend 'mongo' is configured but mongo_uri is empty")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("cache backend '%s' is unknown; caching is disabled", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		warnings = append(warnings, fmt.Sprintf("cache ttl %s is negative", c.Cache.TTL))
	}

	if c.Server.MaxBodyBytes < 0 {
		warnings = append(warnings, fmt.Sprintf("server max_body_bytes %d is negative", c.Server.MaxBodyBytes))
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		warnings = append(warnings, "tracing is enabled but endpoint is empty")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_ratio %.2f is outside [0, 1]", c.Tracing.SampleRatio))
	}

	return warnings
}

// OpenCache opens the configured cache backend. Unknown backends and
// "none" yield a [cache.NullCache].
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheFile:
		dir := c.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL, c.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case CacheMongo:
		mc, err := cache.NewMongoCache(ctx, c.MongoURI, c.MongoDatabase, c.MongoCollection)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// Keyer returns the cache keyer for the backend. Mongo documents share a
// collection, so their keys carry the configured prefix; Redis applies
// the prefix itself.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Backend == CacheMongo && c.Prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
	}
	return cache.NewDefaultKeyer()
}
