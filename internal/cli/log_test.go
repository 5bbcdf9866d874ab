package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"InfoAtInfo", LogInfo, func(l *log.Logger) { l.Info("sealed level") }, true},
		{"DebugAtInfo", LogInfo, func(l *log.Logger) { l.Debug("merge", "zoom", 1) }, false},
		{"DebugAtDebug", LogDebug, func(l *log.Logger) { l.Debug("merge", "zoom", 1) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func stageGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromSlices("demo", []graph.Slice{
		graph.NewSlice(graph.NewSliceNode("AC", "x", "y")),
		graph.NewSlice(graph.NewSliceNode("G", "x"), graph.NewSliceNode("T", "y")),
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStage(t *testing.T) {
	t.Run("Done", func(t *testing.T) {
		var buf bytes.Buffer
		startStage(newLogger(&buf, LogInfo), "Built").done(stageGraph(t))
		got := buf.String()
		for _, want := range []string{"Built demo (", "levels=1", "top_nodes=3"} {
			if !strings.Contains(got, want) {
				t.Errorf("log %q missing %q", got, want)
			}
		}
	})

	t.Run("Stopped", func(t *testing.T) {
		var buf bytes.Buffer
		err := errors.New(errors.ErrCodeInvariantViolation, "zoom 1: weights differ")
		startStage(newLogger(&buf, LogInfo), "Summarized").stopped(stageGraph(t), err)
		got := buf.String()
		for _, want := range []string{"WARN", "Summarized demo stopped early", "kept_through_zoom=0", "INVARIANT_VIOLATION"} {
			if !strings.Contains(got, want) {
				t.Errorf("log %q missing %q", got, want)
			}
		}
	})
}

func TestCommandLogsStage(t *testing.T) {
	c, logs := newTestCLI(t)
	t.Setenv("PANGRAPH_CACHE", "none")
	input := writeFile(t, "paths.json", pathsDoc)

	var ui bytes.Buffer
	out = &ui
	defer func() { out = os.Stdout }()

	root := c.RootCommand()
	root.SetArgs([]string{"align", input, "--cutoff", "0", "-o", t.TempDir() + "/level.json"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("align: %v", err)
	}
	if !strings.Contains(logs.String(), "Built demo (") {
		t.Errorf("command log missing the build stage:\n%s", logs.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, LogInfo)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext should return the attached logger")
	}
}
