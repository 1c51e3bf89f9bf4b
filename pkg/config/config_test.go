package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spindle.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[galaxy]
seed = 1701
name = "Perseus Reach"

[world]
system_count = 120
radius = 200.0

[rails]
source_vein_threshold = 800.0
redundancy_probability = 0.25

[cache]
backend = "file"
dir = "/tmp/spindle-cache"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Galaxy.Seed != 1701 || cfg.Galaxy.Name != "Perseus Reach" {
		t.Errorf("galaxy section = %+v", cfg.Galaxy)
	}
	if cfg.World.SystemCount != 120 || cfg.World.Radius != 200.0 {
		t.Errorf("world section = %+v", cfg.World)
	}
	if cfg.Rails.SourceVeinThreshold != 800.0 || cfg.Rails.RedundancyProbability != 0.25 {
		t.Errorf("rails section = %+v", cfg.Rails)
	}

	opts := cfg.PipelineOptions()
	if opts.Seed != 1701 || opts.World.SystemCount != 120 {
		t.Errorf("pipeline options = %+v", opts)
	}

	dir, err := cfg.CacheDir()
	if err != nil || dir != "/tmp/spindle-cache" {
		t.Errorf("CacheDir() = %q, %v", dir, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Galaxy.Seed != 0 || cfg.Cache.Backend != "" {
		t.Errorf("missing file should yield zero config: %+v", cfg)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `[galaxy` + "\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOpenCacheNone(t *testing.T) {
	cfg := &Config{Cache: CacheSection{Backend: CacheNone}}
	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Errorf("null cache Set: %v", err)
	}
	if _, hit, _ := c.Get(context.Background(), "k"); hit {
		t.Error("null cache should never hit")
	}
}

func TestOpenCacheFile(t *testing.T) {
	cfg := &Config{Cache: CacheSection{Backend: CacheFile, Dir: t.TempDir()}}
	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("file cache Set: %v", err)
	}
	if data, hit, _ := c.Get(context.Background(), "k"); !hit || string(data) != "v" {
		t.Errorf("file cache Get = %q, hit=%v", data, hit)
	}
}
