package cli

import (
	"context"
	"testing"

	"github.com/tsgraph/tsg/pkg/config"
)

func TestBuildServeCacheNone(t *testing.T) {
	c, err := buildServeCache("none", "", config.Default())
	if err != nil {
		t.Fatalf("buildServeCache(none) error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(t.Context(), "k"); err != nil || hit {
		t.Errorf("none-backend cache should never hit, got hit:%v err:%v", hit, err)
	}
}

func TestBuildServeCacheFileDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	c, err := buildServeCache("file", "", cfg)
	if err != nil {
		t.Fatalf("buildServeCache(file) error: %v", err)
	}
	defer c.Close()
}

func TestBuildServeIndexMemory(t *testing.T) {
	idx, err := buildServeIndex(context.Background(), "")
	if err != nil {
		t.Fatalf("buildServeIndex(\"\") error: %v", err)
	}
	defer idx.Close(context.Background())
}
