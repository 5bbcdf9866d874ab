package graph

import (
	stderrors "errors"

	"github.com/matzehuels/pangraph/pkg/errors"
)

var (
	// ErrUnknownNode is returned when a NodeID is not in the arena or not
	// active at the requested zoom level.
	ErrUnknownNode = stderrors.New("unknown node")

	// ErrUnknownLevel is returned when a zoom level does not exist.
	ErrUnknownLevel = stderrors.New("unknown zoom level")

	// ErrUnknownPath is returned when a specimen has no path at a level.
	ErrUnknownPath = stderrors.New("unknown path")

	// ErrDuplicatePath is returned by [Graph.CreatePath] when the accession
	// already has a path at that level.
	ErrDuplicatePath = stderrors.New("duplicate path")

	// ErrNotWritable is returned when a mutation targets a level that is
	// sealed or not the highest.
	ErrNotWritable = stderrors.New("level is not the highest open level")

	// ErrAlreadySummarized is returned when SummarizedBy would be assigned a
	// second time.
	ErrAlreadySummarized = stderrors.New("node already summarized")

	// ErrNonContiguousPath is returned by [Graph.Validate] when traversal
	// orders are not 0..n-1.
	ErrNonContiguousPath = stderrors.New("path traversal orders are not contiguous")

	// ErrTransitionAccounting is returned by [Graph.CheckAccounting] when a
	// node's transition weights do not sum to its specimen count.
	ErrTransitionAccounting = stderrors.New("transition weights do not match specimen count")
)

func unknownNode(id NodeID) error {
	return errors.Wrap(errors.ErrCodeNotFound, ErrUnknownNode, "node %d", id)
}

func unknownLevel(zoom int) error {
	return errors.Wrap(errors.ErrCodeNotFound, ErrUnknownLevel, "zoom %d", zoom)
}

func violation(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvariantViolation, format, args...)
}
