package errors

import (
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/flowdraw/pkg/graph"
)

// Output formats accepted by the CLI and API.
var outputFormats = []string{"svg", "png", "pdf", "json", "dot"}

// OutputFormats returns the supported output format names.
func OutputFormats() []string { return slices.Clone(outputFormats) }

// ValidateTaskID validates a task ID for safety and correctness.
// IDs end up in SVG element IDs, DOT identifiers and cache keys.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidWorkflow, "task ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidWorkflow, "task ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWorkflow, "task ID %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateWorkflow checks every task ID of w and enforces an upper bound
// on the number of tasks and links. A limit of 0 disables the size check.
func ValidateWorkflow(w graph.Workflow, maxTasks, maxLinks int) error {
	if maxTasks > 0 && len(w.Tasks) > maxTasks {
		return New(ErrCodeTooLarge, "workflow has %d tasks (max %d)", len(w.Tasks), maxTasks)
	}
	if maxLinks > 0 && len(w.Links) > maxLinks {
		return New(ErrCodeTooLarge, "workflow has %d links (max %d)", len(w.Links), maxLinks)
	}
	for _, t := range w.Tasks {
		if err := ValidateTaskID(t.ID); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	if !slices.Contains(outputFormats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(outputFormats, ", "))
	}
	return nil
}

// ValidateStyle validates a render style name.
func ValidateStyle(style string) error {
	switch style {
	case graph.StyleSimple, graph.StyleOutline:
		return nil
	}
	return New(ErrCodeInvalidStyle, "unknown style %q (want %s or %s)", style, graph.StyleSimple, graph.StyleOutline)
}

// ValidateVizType validates a visualization type.
func ValidateVizType(vizType string) error {
	switch vizType {
	case graph.VizTypeFlow, graph.VizTypeNodelink:
		return nil
	}
	return New(ErrCodeInvalidVizType, "unknown visualization type %q (want %s or %s)", vizType, graph.VizTypeFlow, graph.VizTypeNodelink)
}
