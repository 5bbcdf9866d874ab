package cache

import "strconv"

// GraphKeyOpts holds the options that change the graph built from an input.
type GraphKeyOpts struct {
	Mode      string `json:"mode"`
	Cutoff    int    `json:"cutoff"`
	MaxLevels int    `json:"max_levels"`
	BlockSize int    `json:"block_size,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey addresses the full graph document built from an input.
	GraphKey(inputHash string, opts GraphKeyOpts) string
	// LevelKey addresses the slices export of one zoom level of a graph.
	LevelKey(graphKey string, zoom int) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey hashes the input hash together with opts.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return graphKey(inputHash, opts)
}

// LevelKey appends the zoom to the graph key.
func (DefaultKeyer) LevelKey(graphKey string, zoom int) string {
	return "level:" + graphKey + ":" + strconv.Itoa(zoom)
}
