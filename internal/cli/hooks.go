package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/observability"
)

// debugHooks reports pipeline, cache and store events on the debug log.
type debugHooks struct {
	logger *log.Logger
}

// registerDebugHooks installs debugHooks for all event categories.
func registerDebugHooks(l *log.Logger) {
	h := &debugHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h *debugHooks) OnAlignStart(_ context.Context, paths int) {
	h.logger.Debug("align started", "paths", paths)
}

func (h *debugHooks) OnAlignComplete(_ context.Context, paths, slices, duplicates int, d time.Duration, err error) {
	h.logger.Debug("align done", "paths", paths, "slices", slices, "duplicates", duplicates, "duration", d, "error", err)
}

func (h *debugHooks) OnLevelStart(_ context.Context, zoom, nodes int) {
	h.logger.Debug("level started", "zoom", zoom, "nodes", nodes)
}

func (h *debugHooks) OnLevelComplete(_ context.Context, zoom, nodes int, d time.Duration, err error) {
	h.logger.Debug("level done", "zoom", zoom, "nodes", nodes, "duration", d, "error", err)
}

func (h *debugHooks) OnPass(_ context.Context, zoom int, pass string, changed int, d time.Duration) {
	h.logger.Debug("pass", "zoom", zoom, "pass", pass, "changed", changed, "duration", d)
}

func (h *debugHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *debugHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *debugHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *debugHooks) OnSave(_ context.Context, backend string, zoom int, d time.Duration, err error) {
	h.logger.Debug("level saved", "backend", backend, "zoom", zoom, "duration", d, "error", err)
}

func (h *debugHooks) OnLoad(_ context.Context, backend string, zoom int, d time.Duration, err error) {
	h.logger.Debug("levels loaded", "backend", backend, "top_zoom", zoom, "duration", d, "error", err)
}
