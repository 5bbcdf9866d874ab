// Package pipeline runs the pangraph build end to end.
//
// This package implements the ingest → align → summarize → persist pipeline
// behind the align and haplo commands.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: decode the input and create level 0, either by aligning a path
//     document ([ModeAlign]) or by cutting an allele matrix into signature
//     windows ([ModeHaplo])
//  2. Summarize: add zoom levels until the graph stops shrinking
//  3. Persist: save sealed levels to the store and the graph document to
//     the cache
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, st, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:  pipeline.ModeAlign,
//	    Input: data,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := runner.ExportLevel(ctx, result, result.Graph.HighestZoom())
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/align"
	"github.com/matzehuels/pangraph/pkg/cache"
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/signature"
	"github.com/matzehuels/pangraph/pkg/summarize"
)

// Input modes.
const (
	// ModeAlign reads a JSON path document and aligns it.
	ModeAlign = "align"
	// ModeHaplo reads an allele matrix and builds signature windows.
	ModeHaplo = "haplo"
)

// DefaultTTL is how long cached graph documents stay valid.
const DefaultTTL = 24 * time.Hour

// ValidModes is the set of supported input modes.
var ValidModes = map[string]bool{
	ModeAlign: true,
	ModeHaplo: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	Mode  string `json:"mode"`
	Input []byte `json:"-"`
	// Name overrides the graph name from the input.
	Name string `json:"name,omitempty"`

	// Align options
	Workers int `json:"workers,omitempty"`

	// Signature options
	BlockSize int `json:"block_size,omitempty"`

	// Summarize options. A negative Cutoff selects the default; zero
	// disables neglect.
	Cutoff    int `json:"cutoff"`
	MaxLevels int `json:"max_levels,omitempty"`

	// Refresh bypasses the cache lookup; the result is still cached.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph *graph.Graph
	// GraphKey addresses the cached graph document.
	GraphKey string
	// Align is set when the graph was aligned in this run.
	Align *align.Result
	// Levels holds the stats of the levels built in this run.
	Levels []summarize.PassStats
	// Saved counts the levels written to the store.
	Saved int
	Stats Stats
	// CacheHit reports that the graph was restored from the cache.
	CacheHit bool
	// Partial reports that summarization failed; Graph holds the levels
	// sealed before the failure.
	Partial bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Paths         int
	Nodes         int
	Levels        int
	BuildTime     time.Duration
	SummarizeTime time.Duration
	PersistTime   time.Duration
}

// ValidateMode checks that a mode is supported.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: align, haplo)", mode)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeMalformedInput, "input is empty")
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be >= 0, got %d", o.Workers)
	}
	if o.Cutoff < 0 {
		o.Cutoff = summarize.FilterThreshold
	}
	if o.MaxLevels <= 0 {
		o.MaxLevels = summarize.DefaultMaxLevels
	}
	if o.BlockSize <= 0 {
		o.BlockSize = signature.BlockSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// GraphKeyOpts returns the cache key options for the graph document. Only
// options that change the resulting graph take part.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	k := cache.GraphKeyOpts{Mode: o.Mode, Cutoff: o.Cutoff, MaxLevels: o.MaxLevels}
	if o.Mode == ModeHaplo {
		k.BlockSize = o.BlockSize
	}
	return k
}
