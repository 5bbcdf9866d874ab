package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds accessions and node names. GFA segment names and
// sample identifiers in practice stay far below it.
const maxNameLength = 1000

// ValidateAccession validates a path accession (the name of one genome).
//
// Rules:
//   - Not empty
//   - At most 1000 characters
//   - No control characters
//   - No whitespace, since GFA P-lines are tab separated
func ValidateAccession(name string) error {
	if name == "" {
		return New(ErrCodeMalformedInput, "accession cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeMalformedInput, "accession too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedInput, "accession %q contains control characters", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeMalformedInput, "accession %q contains whitespace", name)
		}
	}
	return nil
}

// ValidateNodeName validates the external identifier of a node as supplied by
// the loader (GFA segment name or similar).
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeMalformedInput, "node id cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeMalformedInput, "node id too long (max %d characters)", maxNameLength)
	}
	if strings.ContainsAny(name, "\t\n\r,") {
		return New(ErrCodeMalformedInput, "node id %q contains separator characters", name)
	}
	return nil
}

// ValidateSequence validates a node sequence where one is required.
// Sequences are opaque blocks; only emptiness and control characters are
// rejected.
func ValidateSequence(node, seq string) error {
	if seq == "" {
		return New(ErrCodeMalformedInput, "node %q: empty sequence", node)
	}
	for _, r := range seq {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedInput, "node %q: sequence contains control characters", node)
		}
	}
	return nil
}
