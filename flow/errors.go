package flow

import "errors"

// ErrEventNotAllowed is returned when an event arrives in a state that
// has no transition for it, e.g. a stale callback from an old keyboard.
// Callers should drop the event silently.
var ErrEventNotAllowed = errors.New("event not allowed in current state")

// InvalidSelectionError means the input was not among the currently valid
// choices. Recovered locally: the current step is re-presented with Hint.
type InvalidSelectionError struct {
	Input string
	Hint  string
}

func (e *InvalidSelectionError) Error() string {
	return "invalid selection: " + e.Input
}

// ValidationError means free-text input failed a format check.
// Recovered locally with a corrective Hint.
type ValidationError struct {
	Input string
	Hint  string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Input
}

// NotFoundError means a referenced catalog entry vanished, e.g. a drink
// from a stale keyboard that is no longer in the chosen category.
type NotFoundError struct {
	Name string
	Hint string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Name
}

// UserHint extracts the user-facing recovery hint from a transition
// error, or "" when the error carries none.
func UserHint(err error) string {
	var invalid *InvalidSelectionError
	if errors.As(err, &invalid) {
		return invalid.Hint
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Hint
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Hint
	}
	return ""
}
