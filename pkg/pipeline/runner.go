package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/cache"
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	pgio "github.com/matzehuels/pangraph/pkg/io"
	"github.com/matzehuels/pangraph/pkg/observability"
	"github.com/matzehuels/pangraph/pkg/store"
	"github.com/matzehuels/pangraph/pkg/summarize"
)

// Runner encapsulates pipeline execution with caching and persistence.
//
// The Runner holds no pipeline results. Multiple goroutines can use the
// same Runner with different options; each run builds its own graph.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil store skips persistence.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Store: st, Logger: logger, TTL: DefaultTTL}
}

// Execute runs build → summarize → persist. A cached graph document for
// the same input and options short-circuits the first two stages.
//
// When a level fails to build, the levels sealed before it are still
// persisted and returned: the Result is non-nil, Partial is set and the
// summarization error is returned alongside it. Partial graphs are not
// cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{GraphKey: r.Keyer.GraphKey(cache.HashInput(opts.Mode, opts.Input), opts.GraphKeyOpts())}

	if !opts.Refresh {
		if g, ok := r.cachedGraph(ctx, res.GraphKey); ok {
			res.Graph = g
			res.CacheHit = true
			r.fillStats(res)
			r.Logger.Info("loaded graph from cache", "levels", res.Stats.Levels, "nodes", res.Stats.Nodes)
			return res, nil
		}
	}

	buildStart := time.Now()
	g, alignRes, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	res.Graph, res.Align = g, alignRes
	res.Stats.BuildTime = time.Since(buildStart)
	r.Logger.Info("built level 0",
		"mode", opts.Mode,
		"paths", g.Highest().PathCount(),
		"nodes", g.Highest().NodeCount(),
		"duration", res.Stats.BuildTime)

	sumStart := time.Now()
	levels, sumErr := summarize.New(opts.Cutoff, opts.MaxLevels, opts.Logger).Run(ctx, g)
	res.Levels = levels
	res.Stats.SummarizeTime = time.Since(sumStart)
	if sumErr != nil {
		res.Partial = true
		r.Logger.Warn("summarization stopped early",
			"built", len(levels),
			"highest", g.HighestZoom(),
			"error", sumErr)
		// The failed level was discarded; persist what was sealed.
		ctx = context.WithoutCancel(ctx)
	}
	// Seal the top level so that every level is persisted.
	if err := g.Seal(g.HighestZoom()); err != nil {
		return nil, err
	}
	r.Logger.Info("summarized",
		"levels", len(levels),
		"top_nodes", g.Highest().NodeCount(),
		"duration", res.Stats.SummarizeTime)

	persistStart := time.Now()
	if r.Store != nil {
		saved, err := store.SaveGraph(ctx, r.Store, g)
		res.Saved = saved
		if err != nil {
			return nil, err
		}
	}
	if !res.Partial {
		r.cacheGraph(ctx, res.GraphKey, g)
	}
	res.Stats.PersistTime = time.Since(persistStart)

	r.fillStats(res)
	return res, sumErr
}

// ExportLevel returns the slices export of one level of a run, served from
// the cache when possible.
func (r *Runner) ExportLevel(ctx context.Context, res *Result, zoom int) ([]byte, error) {
	if _, ok := res.Graph.Level(zoom); !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "graph has no zoom %d (highest %d)", zoom, res.Graph.HighestZoom())
	}
	key := r.Keyer.LevelKey(res.GraphKey, zoom)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	var buf bytes.Buffer
	if err := pgio.WriteLevel(&buf, res.Graph, zoom); err != nil {
		return nil, err
	}
	r.set(ctx, key, buf.Bytes())
	return buf.Bytes(), nil
}

func (r *Runner) cachedGraph(ctx context.Context, key string) (*graph.Graph, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	g, err := pgio.ReadGraph(bytes.NewReader(data))
	if err != nil {
		r.Logger.Warn("discarding unreadable cache entry", "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return g, true
}

func (r *Runner) cacheGraph(ctx context.Context, key string, g *graph.Graph) {
	var buf bytes.Buffer
	if err := pgio.WriteGraph(&buf, g); err != nil {
		r.Logger.Warn("encode graph for cache", "error", err)
		return
	}
	r.set(ctx, key, buf.Bytes())
}

// set stores data; cache failures never fail a run.
func (r *Runner) set(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func (r *Runner) fillStats(res *Result) {
	res.Stats.Paths = res.Graph.Highest().PathCount()
	res.Stats.Nodes = res.Graph.NodeCount()
	res.Stats.Levels = len(res.Graph.Levels())
}

// Close releases the cache and the store.
func (r *Runner) Close(ctx context.Context) error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
