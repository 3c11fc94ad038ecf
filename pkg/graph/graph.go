package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Workflow Serialization API
// =============================================================================

// MarshalWorkflow converts a Workflow to indented JSON in the wrapped
// {"workflow": ...} form.
func MarshalWorkflow(w Workflow) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeWorkflowTo(w, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteWorkflowFile writes a Workflow to a JSON file.
// The file is created with 0644 permissions.
func WriteWorkflowFile(w Workflow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeWorkflowTo(w, f)
}

// WriteWorkflow writes a Workflow as JSON to an io.Writer.
func WriteWorkflow(w Workflow, wr io.Writer) error {
	return writeWorkflowTo(w, wr)
}

// ReadWorkflowFile reads a workflow JSON file.
func ReadWorkflowFile(path string) (Workflow, error) {
	f, err := os.Open(path)
	if err != nil {
		return Workflow{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWorkflow(f)
}

// ReadWorkflow decodes workflow JSON. Both the wrapped
// {"workflow": {...}} form and a bare {"tasks": [...], "links": [...]}
// object are accepted.
func ReadWorkflow(r io.Reader) (Workflow, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Workflow{}, fmt.Errorf("%w: decode: %v", ErrInvalidWorkflow, err)
	}
	return env.workflow()
}

// UnmarshalWorkflow decodes workflow JSON bytes.
func UnmarshalWorkflow(data []byte) (Workflow, error) {
	return ReadWorkflow(bytes.NewReader(data))
}

// =============================================================================
// Internal Implementation
// =============================================================================

type envelope struct {
	Workflow *Workflow `json:"workflow"`
	Tasks    []Task    `json:"tasks"`
	Links    []Link    `json:"links"`
}

func (e envelope) workflow() (Workflow, error) {
	switch {
	case e.Workflow != nil && (e.Tasks != nil || e.Links != nil):
		return Workflow{}, fmt.Errorf("%w: both \"workflow\" and top-level tasks/links present", ErrInvalidWorkflow)
	case e.Workflow != nil:
		return *e.Workflow, nil
	case e.Tasks != nil || e.Links != nil:
		return Workflow{Tasks: e.Tasks, Links: e.Links}, nil
	}
	return Workflow{}, fmt.Errorf("%w: no tasks or links found", ErrInvalidWorkflow)
}

func writeWorkflowTo(w Workflow, wr io.Writer) error {
	enc := json.NewEncoder(wr)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Workflow: w}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
