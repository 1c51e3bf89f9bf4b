// Package config loads the spindle configuration file.
//
// Configuration is TOML, read once at startup and merged under any
// command-line flags: flags win, file values fill the gaps, package
// defaults cover the rest. A missing file is not an error; everything
// has a usable default.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/spindlespace/spindle/pkg/cache"
	"github.com/spindlespace/spindle/pkg/pipeline"
	"github.com/spindlespace/spindle/pkg/railgen"
	"github.com/spindlespace/spindle/pkg/worldgen"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the on-disk configuration.
type Config struct {
	Galaxy GalaxySection    `toml:"galaxy"`
	World  worldgen.Options `toml:"world"`
	Rails  railgen.Policy   `toml:"rails"`
	Cache  CacheSection     `toml:"cache"`
}

// GalaxySection names the setting being generated.
type GalaxySection struct {
	Seed uint64 `toml:"seed"`
	Name string `toml:"name"`
}

// CacheSection selects and configures the cache backend.
type CacheSection struct {
	// Backend is one of "file", "redis", or "none". Default "file".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Defaults to a "spindle"
	// directory under the user cache dir.
	Dir string `toml:"dir"`

	// RedisURL is the redis backend's connection URL.
	RedisURL string `toml:"redis_url"`
}

// Load reads the configuration from path. A missing file yields the
// zero configuration, which is fully usable.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend %q requires redis_url", CacheRedis)
	}
	return nil
}

// PipelineOptions converts the configuration into pipeline options.
// Zero fields stay zero; the pipeline applies its own defaults.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Seed:  c.Galaxy.Seed,
		Name:  c.Galaxy.Name,
		World: c.World,
		Rails: c.Rails,
	}
}

// CacheDir returns the configured file cache directory, defaulting to a
// "spindle" directory under the user cache dir.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, "spindle"), nil
}

// OpenCache constructs the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisURL)
	default:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
}
