package disclosure

import "fmt"

// NoFocus is the Focused value when no item holds logical focus.
const NoFocus = -1

// FocusToggle is the Effect index used when focus moves to the toggle.
const FocusToggle = -1

// State is the menu state owned by a Controller. Callers receive copies.
type State struct {
	Open      bool
	ItemCount int
	Focused   int
}

// HasFocus reports whether an item holds logical focus.
func (s State) HasFocus() bool {
	return s.Focused != NoFocus
}

func (s State) String() string {
	focused := "none"
	if s.HasFocus() {
		focused = fmt.Sprintf("%d", s.Focused)
	}
	return fmt.Sprintf("open=%t items=%d focused=%s", s.Open, s.ItemCount, focused)
}

// violation returns a description of the first broken invariant, or "".
func (s State) violation() string {
	switch {
	case s.ItemCount < 0:
		return "negative item count"
	case s.Focused != NoFocus && (s.Focused < 0 || s.Focused >= s.ItemCount):
		return "focused index out of range"
	case !s.Open && s.Focused != NoFocus:
		return "closed menu holds item focus"
	}
	return ""
}

// clamped returns the nearest valid state.
func (s State) clamped() State {
	if s.ItemCount < 0 {
		s.ItemCount = 0
	}
	if s.Focused < 0 || s.Focused >= s.ItemCount || !s.Open {
		s.Focused = NoFocus
	}
	return s
}
