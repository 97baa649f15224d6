package resolve

import (
	"fmt"
	"strings"
)

// ResolutionError reports a failure scoped to a single resolution call: a
// provides conflict, an unmatchable tool, a bad variable reference during
// expansion, or an invalid request. The shared Toolchain is unaffected;
// other requests may still succeed.
type ResolutionError struct {
	// Action is the action being resolved, when the failure is tied to one.
	Action string

	// Entity names the feature or action config the failure occurred in.
	Entity string

	// Reason describes what went wrong.
	Reason string

	// Err is the underlying cause, when one exists (typically a vars
	// lookup error naming the offending variable).
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("resolution failed")
	if e.Action != "" {
		fmt.Fprintf(&b, " for action %q", e.Action)
	}
	if e.Entity != "" {
		fmt.Fprintf(&b, " in %q", e.Entity)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause for errors.As / errors.Is.
func (e *ResolutionError) Unwrap() error { return e.Err }

func resolutionErrorf(action, entity, format string, args ...any) *ResolutionError {
	return &ResolutionError{Action: action, Entity: entity, Reason: fmt.Sprintf(format, args...)}
}
