package align

import (
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// Step is one traversal of an input path.
type Step struct {
	Node   string       `json:"node"`
	Seq    string       `json:"seq,omitempty"`
	Strand graph.Strand `json:"strand,omitempty"`
}

// Input is one linear path to align.
type Input struct {
	Accession string `json:"accession"`
	Steps     []Step `json:"steps"`
}

// Accessions returns the accession of every input in order.
func Accessions(inputs []Input) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = in.Accession
	}
	return out
}

// Validate rejects inputs that cannot be aligned. Accessions must be
// non-empty and unique and node identities non-empty. Every node needs a
// sequence, either on the step or in table, and a node identity may not be
// given two different sequences. A zero-length path is valid.
func Validate(inputs []Input, table map[string]string) error {
	seen := make(map[string]bool, len(inputs))
	seqs := make(map[string]string)
	for i, in := range inputs {
		if err := errors.ValidateAccession(in.Accession); err != nil {
			return errors.New(errors.ErrCodeMalformedInput, "path %d: %s", i, errors.UserMessage(err))
		}
		if seen[in.Accession] {
			return errors.New(errors.ErrCodeMalformedInput, "duplicate accession %q", in.Accession)
		}
		seen[in.Accession] = true

		for j, st := range in.Steps {
			if err := errors.ValidateNodeName(st.Node); err != nil {
				return errors.New(errors.ErrCodeMalformedInput, "path %s step %d: %s", in.Accession, j, errors.UserMessage(err))
			}
			switch st.Strand {
			case 0, graph.Forward, graph.Reverse:
			default:
				return errors.New(errors.ErrCodeMalformedInput, "path %s step %d: invalid strand %q", in.Accession, j, st.Strand)
			}
			seq := st.Seq
			if seq == "" {
				seq = table[st.Node]
			}
			if err := errors.ValidateSequence(st.Node, seq); err != nil {
				return errors.New(errors.ErrCodeMalformedInput, "path %s step %d: %s", in.Accession, j, errors.UserMessage(err))
			}
			if prev, ok := seqs[st.Node]; ok && prev != seq {
				return errors.New(errors.ErrCodeMalformedInput, "node %s has conflicting sequences", st.Node)
			}
			seqs[st.Node] = seq
		}
	}
	return nil
}

// resolve returns a copy of inputs with every step's sequence and strand
// filled in. It assumes Validate passed.
func resolve(inputs []Input, table map[string]string) []Input {
	out := make([]Input, len(inputs))
	for i, in := range inputs {
		steps := make([]Step, len(in.Steps))
		for j, st := range in.Steps {
			if st.Seq == "" {
				st.Seq = table[st.Node]
			}
			if st.Strand == 0 {
				st.Strand = graph.Forward
			}
			steps[j] = st
		}
		out[i] = Input{Accession: in.Accession, Steps: steps}
	}
	return out
}
