package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// Format is a workflow file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
// Unknown extensions are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want json or toml)", graph.ErrInvalidWorkflow, s)
}

// ReadJSON decodes a JSON workflow from r.
//
// Both the wrapped {"workflow": {...}} document and a bare object with
// "tasks" and "links" arrays are accepted. ReadJSON does not close r.
func ReadJSON(r io.Reader) (graph.Workflow, error) {
	return graph.ReadWorkflow(r)
}

// tomlDocument accepts a [workflow] table or top-level [[tasks]]/[[links]].
type tomlDocument struct {
	Workflow *graph.Workflow `toml:"workflow,omitempty"`
	Tasks    []graph.Task    `toml:"tasks,omitempty"`
	Links    []graph.Link    `toml:"links,omitempty"`
}

// ReadTOML decodes a TOML workflow from r:
//
//	[[tasks]]
//	id = "load"
//	outputs = ["rows"]
//
//	[[links]]
//	source = { task_id = "load", output_name = "rows" }
//	target = { task_id = "store", input_name = "rows" }
//
// The same keys may instead live under [workflow]. ReadTOML does not close r.
func ReadTOML(r io.Reader) (graph.Workflow, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return graph.Workflow{}, fmt.Errorf("%w: decode: %v", graph.ErrInvalidWorkflow, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return graph.Workflow{}, fmt.Errorf("%w: unknown key %q", graph.ErrInvalidWorkflow, undecoded[0].String())
	}
	switch {
	case doc.Workflow != nil && (doc.Tasks != nil || doc.Links != nil):
		return graph.Workflow{}, fmt.Errorf("%w: both [workflow] and top-level tasks/links present", graph.ErrInvalidWorkflow)
	case doc.Workflow != nil:
		return *doc.Workflow, nil
	case doc.Tasks != nil || doc.Links != nil:
		return graph.Workflow{Tasks: doc.Tasks, Links: doc.Links}, nil
	}
	return graph.Workflow{}, fmt.Errorf("%w: no tasks or links found", graph.ErrInvalidWorkflow)
}

// Read decodes a workflow in the given format.
func Read(r io.Reader, f Format) (graph.Workflow, error) {
	if f == FormatTOML {
		return ReadTOML(r)
	}
	return ReadJSON(r)
}

// ImportFile reads the workflow at path and builds a validated graph.
// The format is chosen by [FormatFromPath].
//
// Errors from decoding wrap [graph.ErrInvalidWorkflow]; reference errors
// are *[flow.ReferentialError]. Both are wrapped with the file path.
func ImportFile(path string) (*flow.Graph, error) {
	w, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := graph.ToFlow(w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadFile reads the workflow document at path without validating it.
func ReadFile(path string) (graph.Workflow, error) {
	f, err := os.Open(path)
	if err != nil {
		return graph.Workflow{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := Read(f, FormatFromPath(path))
	if err != nil {
		return graph.Workflow{}, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
