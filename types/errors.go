package types

import "fmt"

// InputError is a recoverable player input problem. It is shown to the
// player and the prompt is repeated at the same state.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates a player-facing input error.
func NewInputError(msg string) *InputError {
	return &InputError{Message: msg}
}

// ContentIntegrityError reports a broken adventure graph: an exit that
// leads nowhere, a choice without a next node. The runtime cannot continue
// past one of these.
type ContentIntegrityError struct {
	Where  string
	Reason string
}

func (e *ContentIntegrityError) Error() string {
	if e.Where == "" {
		return "content integrity: " + e.Reason
	}
	return fmt.Sprintf("content integrity: %s: %s", e.Where, e.Reason)
}
