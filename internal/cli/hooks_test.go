package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/observability"
)

func TestDebugHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	registerDebugHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Pipeline().OnPass(ctx, 1, "merge", 3, time.Millisecond)
	observability.Cache().OnCacheHit(ctx, "graph:abc")
	observability.Store().OnSave(ctx, "memory", 2, time.Millisecond, nil)

	got := buf.String()
	for _, want := range []string{"pass=merge", "key=graph:abc", "backend=memory"} {
		if !strings.Contains(got, want) {
			t.Errorf("debug log missing %q:\n%s", want, got)
		}
	}
}
