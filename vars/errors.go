package vars

import "fmt"

// NotFoundError reports a variable reference with no binding.
type NotFoundError struct {
	// Name is the full reference that failed to resolve.
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variable %q not found", e.Name)
}

// WrongShapeError reports a variable that is bound, but to a value of the
// wrong kind for the requested use (for example iterating over a scalar, or
// substituting a sequence into a flag template).
type WrongShapeError struct {
	// Name is the reference that resolved to the offending value.
	Name string

	// Want and Got describe the expected and actual kinds.
	Want string
	Got  string
}

// Error implements the error interface.
func (e *WrongShapeError) Error() string {
	return fmt.Sprintf("variable %q is a %s, expected a %s", e.Name, e.Got, e.Want)
}
