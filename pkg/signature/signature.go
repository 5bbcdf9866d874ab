// Package signature seeds a zoom-0 graph from an allele matrix.
//
// The matrix holds one locus per row and one individual per column. Loci are
// cut into fixed-width windows; inside each window every distinct run of
// alleles (a signature) becomes one node, and each individual's path visits
// the node matching its own signature in every window. The resulting graph
// is the usual starting point for HaploBlocker-style summarization with
// [summarize.Summarizer].
package signature

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// BlockSize is the default window width in loci.
const BlockSize = 20

// maxLine bounds a single matrix row. Rows of a few thousand individuals
// exceed bufio's default token size.
const maxLine = 16 << 20

// ReadAlleles parses a whitespace-separated integer matrix with one locus per
// line and returns it transposed: one allele slice per individual. Blank
// lines are skipped. Rows of differing width are rejected.
func ReadAlleles(r io.Reader) ([][]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var individuals [][]int
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if individuals == nil {
			individuals = make([][]int, len(fields))
		}
		if len(fields) != len(individuals) {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"line %d: %d alleles, expected %d", line, len(fields), len(individuals))
		}
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.New(errors.ErrCodeMalformedInput, "line %d column %d: invalid allele %q", line, i+1, f)
			}
			individuals[i] = append(individuals[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "read allele matrix")
	}
	return individuals, nil
}

// Key renders a run of alleles as the node sequence for that signature.
// Alleles are comma-separated so multi-digit codes stay distinct.
func Key(alleles []int) string {
	parts := make([]string, len(alleles))
	for i, a := range alleles {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// Windows returns the number of full windows of width blockSize in a
// matrix of the given number of loci. Trailing loci that do not fill a
// window are dropped.
func Windows(loci, blockSize int) int {
	if blockSize < 1 {
		return 0
	}
	return loci / blockSize
}

// Slices groups individuals by signature in every full window. Individual i
// is named by its column index. Within a window, signatures appear in the
// order of the first individual carrying them.
func Slices(individuals [][]int, blockSize int) ([]graph.Slice, error) {
	if blockSize < 1 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "block size must be positive, got %d", blockSize)
	}
	if len(individuals) == 0 {
		return nil, nil
	}
	loci := len(individuals[0])
	for i, ind := range individuals {
		if len(ind) != loci {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"individual %d has %d loci, expected %d", i, len(ind), loci)
		}
	}

	names := make([]string, len(individuals))
	for i := range individuals {
		names[i] = strconv.Itoa(i)
	}

	windows := Windows(loci, blockSize)
	out := make([]graph.Slice, 0, windows)
	for w := range windows {
		lo := w * blockSize
		index := make(map[string]int)
		var slice graph.Slice
		for i, ind := range individuals {
			key := Key(ind[lo : lo+blockSize])
			at, ok := index[key]
			if !ok {
				at = slice.Len()
				index[key] = at
				slice.Add(graph.SliceNode{Seq: key, Paths: make(map[string]graph.Strand)})
			}
			slice.Nodes[at].Paths[names[i]] = graph.Forward
		}
		out = append(out, slice)
	}
	return out, nil
}

// Build creates a graph whose zoom-0 level holds one node per unique
// signature per window, with Start = End = window index, and one path per
// individual. Transitions are populated. A matrix with fewer loci than one
// window yields an error.
func Build(name string, individuals [][]int, blockSize int) (*graph.Graph, error) {
	slices, err := Slices(individuals, blockSize)
	if err != nil {
		return nil, err
	}
	if len(slices) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "no full window of %d loci in input", blockSize)
	}
	return graph.FromSlices(name, slices)
}
