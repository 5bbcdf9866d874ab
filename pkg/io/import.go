package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/pangraph/pkg/align"
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
	"github.com/matzehuels/pangraph/pkg/signature"
)

// PathFile is the decoded form of a path input document.
type PathFile struct {
	Name  string            `json:"name,omitempty"`
	Nodes map[string]string `json:"nodes,omitempty"`
	Paths []align.Input     `json:"paths"`
}

// ReadPaths decodes a path document from r. Unknown fields are rejected so
// that a misspelled key does not silently drop data. ReadPaths does not
// validate the paths themselves; [align.Build] does.
func ReadPaths(r io.Reader) (*PathFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var pf PathFile
	if err := dec.Decode(&pf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode paths")
	}
	if pf.Paths == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "decode paths: missing \"paths\"")
	}
	return &pf, nil
}

// ImportPaths reads the path document at path.
func ImportPaths(path string) (*PathFile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPaths(f)
}

// ImportAlleles reads the allele matrix at path with [signature.ReadAlleles].
func ImportAlleles(path string) ([][]int, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return signature.ReadAlleles(f)
}

// ReadGraph restores a graph written by [WriteGraph].
func ReadGraph(r io.Reader) (*graph.Graph, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode graph")
	}
	return graph.Restore(doc.Levels)
}

// ImportGraph restores the graph document at path.
func ImportGraph(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeNotFound
		}
		return nil, errors.Wrap(code, err, "open %s", path)
	}
	return f, nil
}
