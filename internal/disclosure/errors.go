package disclosure

import "fmt"

// InvariantError reports a MenuState that broke one of its invariants. It
// indicates a programming error in the caller or the controller, never a
// user-facing condition.
type InvariantError struct {
	Op     string
	State  State
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("disclosure: %s: %s (%s)", e.Op, e.Reason, e.State)
}
