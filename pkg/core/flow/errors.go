package flow

import "fmt"

// RefKind classifies a [ReferentialError].
type RefKind int

const (
	// RefUnknownSource means a link's source task does not exist.
	RefUnknownSource RefKind = iota
	// RefUnknownTarget means a link's target task does not exist.
	RefUnknownTarget
	// RefUnknownOutput means the source task has no output with that name.
	RefUnknownOutput
	// RefUnknownInput means the target task has no input with that name.
	RefUnknownInput
	// RefPortTable means a task's port names and anchor fractions disagree
	// in length, or a fraction lies outside [0, 1].
	RefPortTable
)

func (k RefKind) String() string {
	switch k {
	case RefUnknownSource:
		return "unknown source task"
	case RefUnknownTarget:
		return "unknown target task"
	case RefUnknownOutput:
		return "unknown output port"
	case RefUnknownInput:
		return "unknown input port"
	case RefPortTable:
		return "invalid port table"
	default:
		return "invalid reference"
	}
}

// ReferentialError reports a link or task that references something the
// graph does not declare. It is never recoverable by the layout engine.
type ReferentialError struct {
	Kind      RefKind
	LinkIndex int    // index into the link list, -1 for task-level problems
	TaskID    string // task that is missing or owns the bad port
	Port      string // offending port name, empty for task-level problems
}

func (e *ReferentialError) Error() string {
	msg := e.Kind.String()
	if e.LinkIndex >= 0 {
		msg = fmt.Sprintf("link %d: %s", e.LinkIndex, msg)
	}
	msg = fmt.Sprintf("%s %q", msg, e.TaskID)
	if e.Port != "" {
		msg += fmt.Sprintf(" port %q", e.Port)
	}
	return msg
}
