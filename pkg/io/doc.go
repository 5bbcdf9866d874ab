// Package io reads alignment input and writes graphs as JSON.
//
// # Path Input
//
// A path file lists the linear paths to align and, optionally, a table of
// node sequences for steps that do not carry their own:
//
//	{
//	  "name": "chr1",
//	  "nodes": {"n1": "CAAATAAG", "n2": "A", "n3": "G"},
//	  "paths": [
//	    {"accession": "x", "steps": [{"node": "n1"}, {"node": "n2"}]},
//	    {"accession": "z", "steps": [{"node": "n1"}, {"node": "n3", "strand": "-"}]}
//	  ]
//	}
//
// Use [ReadPaths] or [ImportPaths]. Strands default to "+".
//
// # Allele Input
//
// [ImportAlleles] opens a whitespace-separated allele matrix (one locus per
// line, one individual per column) and returns it per individual, ready for
// [signature.Build].
//
// # Export
//
// [WriteSlices] writes the slices of a level, each a list of alternatives
// with their sequence and carrying accessions. [WriteGraph] writes every
// level as a [graph.Snapshot]; [ReadGraph] restores such a document,
// including retired nodes, so provenance survives a round trip.
//
// # Concurrency
//
// Writers only read the graph and may run alongside other readers, but not
// alongside a summarization pass on the same graph.
package io
