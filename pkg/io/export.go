package io

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// WriteJSON encodes a workflow as indented JSON in the wrapped
// {"workflow": ...} form. The output can be read back with [ReadJSON].
func WriteJSON(w graph.Workflow, wr io.Writer) error {
	return graph.WriteWorkflow(w, wr)
}

// WriteTOML encodes a workflow as TOML with top-level [[tasks]] and
// [[links]] arrays. The output can be read back with [ReadTOML].
func WriteTOML(w graph.Workflow, wr io.Writer) error {
	doc := tomlDocument{Tasks: w.Tasks, Links: w.Links}
	if err := toml.NewEncoder(wr).Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes a workflow in the given format.
func Write(w graph.Workflow, wr io.Writer, f Format) error {
	if f == FormatTOML {
		return WriteTOML(w, wr)
	}
	return WriteJSON(w, wr)
}

// ExportFile writes g to path in the format implied by its extension.
// The file is created with 0644 permissions.
func ExportFile(g *flow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(graph.FromFlow(g), f, FormatFromPath(path))
}
