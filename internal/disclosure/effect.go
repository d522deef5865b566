package disclosure

import "fmt"

// EffectKind enumerates the instructions the controller emits for the
// presentation layer.
type EffectKind int

const (
	EffectMenuOpened EffectKind = iota
	EffectMenuClosed
	EffectFocusMoved
	EffectFocusReturnedToToggle
	EffectFocusAllowedToProgress
)

func (k EffectKind) String() string {
	switch k {
	case EffectMenuOpened:
		return "menuOpened"
	case EffectMenuClosed:
		return "menuClosed"
	case EffectFocusMoved:
		return "focusMoved"
	case EffectFocusReturnedToToggle:
		return "focusReturnedToToggle"
	case EffectFocusAllowedToProgress:
		return "focusAllowedToProgress"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is a single instruction. Index is only meaningful for
// EffectFocusMoved, where it is the target item or FocusToggle.
type Effect struct {
	Kind  EffectKind
	Index int
}

func (e Effect) String() string {
	if e.Kind != EffectFocusMoved {
		return e.Kind.String()
	}
	if e.Index == FocusToggle {
		return "focusMoved(toggle)"
	}
	return fmt.Sprintf("focusMoved(%d)", e.Index)
}

// Listener receives effects as they are emitted.
type Listener func(Effect)

func kind(k EffectKind) Effect {
	return Effect{Kind: k, Index: FocusToggle}
}

func focusMoved(i int) Effect {
	return Effect{Kind: EffectFocusMoved, Index: i}
}
