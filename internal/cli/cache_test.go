package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pangraph/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir("")
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	custom := filepath.Join(t.TempDir(), "custom")
	if dir, _ := cacheDir(custom); dir != custom {
		t.Errorf("cacheDir(%q) = %q", custom, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	c.Config.Cache.Dir = dir

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"graph:a", "graph:b"} {
		if err := fc.Set(ctx, key, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out = io.Discard
	defer func() { out = os.Stdout }()

	if err := c.cacheClearCommand().RunE(nil, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "graph:a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestNewRunnerScope(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.Backend = cache.BackendNone
	c.Config.Cache.Scope = "chr1"

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close(context.Background())

	gk := r.Keyer.GraphKey(cache.HashInput("align", []byte(pathsDoc)), cache.GraphKeyOpts{Mode: "align"})
	if !strings.HasPrefix(gk, "chr1:graph:") {
		t.Errorf("GraphKey = %s, want the chr1 scope", gk)
	}
}
