package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestCacheDirDefault(t *testing.T) {
	withEnv(t, "XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	withEnv(t, "XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigPathDefault(t *testing.T) {
	withEnv(t, "XDG_CONFIG_HOME", "")

	path := configPath()
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", appName, "config.toml")
	if path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}

func TestConfigPathXDG(t *testing.T) {
	withEnv(t, "XDG_CONFIG_HOME", "/tmp/custom-config")

	path := configPath()
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer c.Close()

	// A null cache never reports a hit.
	ctx := t.Context()
	if _, hit, err := c.Get(ctx, "anything"); err != nil || hit {
		t.Errorf("null cache Get = hit:%v err:%v, want hit:false err:nil", hit, err)
	}
}

func TestNewCacheFile(t *testing.T) {
	withEnv(t, "XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	defer c.Close()

	if !strings.Contains(appName, "tsg") {
		t.Fatalf("sanity check failed: appName = %q", appName)
	}
}
