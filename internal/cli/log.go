// Package cli implements the pangraph command-line interface.
//
// This package provides commands for aligning path documents and allele
// matrices into variation graphs, summarizing them into coarser zoom
// levels, browsing stored levels and managing the graph document cache.
// The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - align: Align a JSON path document and summarize the graph
//   - haplo: Build a haplotype block graph from an allele matrix
//   - summarize: Add levels to a saved graph document
//   - levels: List, show, export and delete stored graphs
//   - cache: Manage the graph document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The base
// level comes from log.level in the config file. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/matzehuels/pangraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// newLogger creates the command logger. Timestamps are "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stage times one command step that produces a graph.
type stage struct {
	logger *log.Logger
	verb   string
	start  time.Time
}

func startStage(l *log.Logger, verb string) *stage {
	return &stage{logger: l, verb: verb, start: time.Now()}
}

func (s *stage) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// done logs the finished graph, e.g.
//
//	Built demo (1.234s) levels=3 top_nodes=5
func (s *stage) done(g *graph.Graph) {
	s.logger.Info(fmt.Sprintf("%s %s (%s)", s.verb, g.Name, s.elapsed()),
		"levels", len(g.Levels()),
		"top_nodes", g.Highest().NodeCount())
}

// stopped logs a run that failed after sealing the levels up to the
// current highest one.
func (s *stage) stopped(g *graph.Graph, err error) {
	s.logger.Warn(fmt.Sprintf("%s %s stopped early (%s)", s.verb, g.Name, s.elapsed()),
		"kept_through_zoom", g.HighestZoom(),
		"code", errors.GetCode(err),
		"reason", errors.UserMessage(err))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside
// a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
