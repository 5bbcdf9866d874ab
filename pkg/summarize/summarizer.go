package summarize

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/observability"
)

// DefaultMaxLevels bounds [Summarizer.Run] when MaxLevels is not set.
const DefaultMaxLevels = 8

// PassStats reports what one level build did.
type PassStats struct {
	Zoom        int
	NodesBefore int
	NodesAfter  int
	Merged      int
	Neglected   int
	Split       int
	Duration    time.Duration
}

// Shrank reports whether the level has fewer nodes than the one below.
func (s PassStats) Shrank() bool { return s.NodesAfter < s.NodesBefore }

// Summarizer builds zoom levels on top of a graph.
//
// A Summarizer holds no graph state and may be reused; a single graph must
// not be summarized from several goroutines at once.
type Summarizer struct {
	Cutoff    int
	MaxLevels int
	Logger    *log.Logger
}

// New creates a summarizer. A negative cutoff selects [FilterThreshold];
// zero disables neglect. maxLevels <= 0 selects [DefaultMaxLevels]. A nil
// logger uses log.Default().
func New(cutoff, maxLevels int, logger *log.Logger) *Summarizer {
	if cutoff < 0 {
		cutoff = FilterThreshold
	}
	if maxLevels <= 0 {
		maxLevels = DefaultMaxLevels
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Summarizer{Cutoff: cutoff, MaxLevels: maxLevels, Logger: logger}
}

func (s *Summarizer) log() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Next builds one level above the highest level of g: it opens the level,
// merges to a fixpoint, neglects minor nodes, splits groups, merges again,
// validates and seals. Cancellation is checked between passes. On any
// error the new level is discarded.
func (s *Summarizer) Next(ctx context.Context, g *graph.Graph) (PassStats, error) {
	if err := ctx.Err(); err != nil {
		return PassStats{}, err
	}
	start := time.Now()
	stats := PassStats{NodesBefore: g.Highest().NodeCount()}

	lvl, err := g.OpenLevel()
	if err != nil {
		return stats, err
	}
	stats.Zoom = lvl.Zoom
	hooks := observability.Pipeline()
	hooks.OnLevelStart(ctx, lvl.Zoom, stats.NodesBefore)

	err = s.passes(ctx, g, lvl.Zoom, &stats)
	if err == nil {
		err = g.Validate()
	}
	if err == nil {
		err = g.Seal(lvl.Zoom)
	}
	stats.NodesAfter = lvl.NodeCount()
	stats.Duration = time.Since(start)
	hooks.OnLevelComplete(ctx, lvl.Zoom, stats.NodesAfter, stats.Duration, err)

	if err != nil {
		if errors.IsFatal(err) {
			s.log().Error("discarding level", "zoom", lvl.Zoom, "error", err)
		} else {
			s.log().Warn("level interrupted", "zoom", lvl.Zoom, "error", err)
		}
		if derr := g.Discard(lvl.Zoom); derr != nil {
			s.log().Warn("discard failed", "zoom", lvl.Zoom, "error", derr)
		}
		return stats, errors.Annotate(err, "zoom %d", lvl.Zoom)
	}

	s.log().Info("sealed level",
		"zoom", stats.Zoom,
		"nodes", stats.NodesAfter,
		"merged", stats.Merged,
		"neglected", stats.Neglected,
		"split", stats.Split,
		"duration", stats.Duration)
	return stats, nil
}

func (s *Summarizer) passes(ctx context.Context, g *graph.Graph, zoom int, stats *PassStats) error {
	steps := []struct {
		name string
		run  func() (int, error)
		into *int
	}{
		{"merge", func() (int, error) { return MergeToFixpoint(g, zoom) }, &stats.Merged},
		{"neglect", func() (int, error) { return NeglectNodes(g, zoom, s.Cutoff) }, &stats.Neglected},
		{"split", func() (int, error) { return SplitGroups(g, zoom) }, &stats.Split},
		{"merge", func() (int, error) { return MergeToFixpoint(g, zoom) }, &stats.Merged},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := time.Now()
		n, err := step.run()
		if err != nil {
			return err
		}
		*step.into += n
		observability.Pipeline().OnPass(ctx, zoom, step.name, n, time.Since(t))
		s.log().Debug(step.name, "zoom", zoom, "changed", n, "nodes", mustLevel(g, zoom).NodeCount())
	}
	return nil
}

func mustLevel(g *graph.Graph, zoom int) *graph.Level {
	lvl, _ := g.Level(zoom)
	return lvl
}

// MergeToFixpoint repeats [SimpleMerge] until it reports no merge and
// returns the total.
func MergeToFixpoint(g *graph.Graph, zoom int) (int, error) {
	total := 0
	for {
		n, err := SimpleMerge(g, zoom)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		total += n
	}
}

// Run builds levels with [Summarizer.Next] until a level stops shrinking
// or MaxLevels levels have been added. The level that did not shrink is
// kept. It returns the stats of every level built.
func (s *Summarizer) Run(ctx context.Context, g *graph.Graph) ([]PassStats, error) {
	limit := s.MaxLevels
	if limit <= 0 {
		limit = DefaultMaxLevels
	}
	var all []PassStats
	for range limit {
		stats, err := s.Next(ctx, g)
		if err != nil {
			return all, err
		}
		all = append(all, stats)
		if !stats.Shrank() {
			s.log().Debug("level did not shrink, stopping", "zoom", stats.Zoom)
			break
		}
	}
	return all, nil
}
