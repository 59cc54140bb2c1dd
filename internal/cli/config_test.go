package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/cache"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
[layout]
iterations = 300
k_repulse = 0.08
max_radius = 1.5

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "24h"
compress = true
prefix = "staging:"

[server]
addr = ":9090"
read_timeout = "5s"
max_nodes = 1000
colour = "blue"
`)

	cfg, unknown, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Layout.Iterations == nil || *cfg.Layout.Iterations != 300 {
		t.Errorf("Layout.Iterations = %v, want 300", cfg.Layout.Iterations)
	}
	if cfg.Layout.MaxRadius == nil || *cfg.Layout.MaxRadius != 1.5 {
		t.Errorf("Layout.MaxRadius = %v, want 1.5", cfg.Layout.MaxRadius)
	}
	if cfg.Layout.KAttract != nil {
		t.Errorf("Layout.KAttract = %v, want unset", *cfg.Layout.KAttract)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" || !cfg.Cache.Compress {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Prefix != "staging:" {
		t.Errorf("Cache.Prefix = %q, want %q", cfg.Cache.Prefix, "staging:")
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout.Duration != 5*time.Second || cfg.Server.MaxNodes != 1000 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Unset values keep their defaults.
	if cfg.Server.WriteTimeout.Duration != defaultWriteTimeout {
		t.Errorf("Server.WriteTimeout = %v, want default %v", cfg.Server.WriteTimeout, defaultWriteTimeout)
	}
	if want := []string{"server.colour"}; !reflect.DeepEqual(unknown, want) {
		t.Errorf("unknown = %v, want %v", unknown, want)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, _, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("optional missing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	if _, _, err := loadConfig(missing, true); err == nil {
		t.Error("required missing config should fail")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":   "[layout\n",
		"duration": "[server]\nread_timeout = \"soon\"\n",
		"type":     "[layout]\niterations = \"many\"\n",
	}
	for name, content := range tests {
		path := writeFile(t, "config.toml", content)
		if _, _, err := loadConfig(path, true); err == nil {
			t.Errorf("%s: loadConfig succeeded, want error", name)
		}
	}
}

func TestCacheOptions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg := defaultConfig()
	opts, err := cfg.CacheOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("Dir = %q, want XDG cache dir", opts.Dir)
	}

	cfg.Cache = CacheConfig{Backend: cache.BackendMongo, MongoURI: "mongodb://db", TTL: Duration{time.Hour}}
	opts, err = cfg.CacheOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dir != "" || opts.Mongo.URI != "mongodb://db" || opts.TTL != time.Hour {
		t.Errorf("opts = %+v", opts)
	}
}

func TestConfigKeyer(t *testing.T) {
	opts := cache.LayoutKeyOpts{Iterations: 10}
	plain := cache.NewDefaultKeyer().LayoutKey("abc", opts)

	cfg := defaultConfig()
	if got := cfg.Keyer().LayoutKey("abc", opts); got != plain {
		t.Errorf("LayoutKey() without prefix = %q, want %q", got, plain)
	}

	cfg.Cache.Prefix = "staging:"
	keyer := cfg.Keyer()
	if got, want := keyer.LayoutKey("abc", opts), "staging:"+plain; got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}
	artifact := keyer.ArtifactKey("abc", cache.ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(artifact, "staging:") {
		t.Errorf("ArtifactKey() = %q, want staging: prefix", artifact)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "")

	if got, want := configPath(), filepath.Join("/tmp/xdg-config", appName, "config.toml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestLayoutOptionsPrecedence(t *testing.T) {
	iters, kr := 7, 0.5
	c := New(os.Stderr, LogInfo)
	c.Config.Layout.Iterations = &iters
	c.Config.Layout.KRepulse = &kr

	cmd := &cobra.Command{Use: "x"}
	flags := addLayoutFlags(cmd)
	if err := cmd.Flags().Set("iterations", "9"); err != nil {
		t.Fatal(err)
	}

	opts := c.layoutOptions(flags)
	if opts.Iterations != 9 {
		t.Errorf("Iterations = %d, want 9 (flag)", opts.Iterations)
	}
	if opts.KRepulse != 0.5 {
		t.Errorf("KRepulse = %v, want 0.5 (config)", opts.KRepulse)
	}
	if opts.KAttract != pipeline.DefaultOptions().KAttract {
		t.Errorf("KAttract = %v, want default", opts.KAttract)
	}
	if opts.MaxRadius != nil {
		t.Errorf("MaxRadius = %v, want unset", *opts.MaxRadius)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	text, _ := d.MarshalText()
	if !strings.EqualFold(string(text), "1m30s") {
		t.Errorf("MarshalText = %s, want 1m30s", text)
	}
}
