package disclosure

import (
	"errors"
	"fmt"
	"strings"
)

// Key is the normalized key vocabulary understood by the controller.
// Raw platform input is translated into these tokens before it reaches
// OnKey.
type Key int

const (
	KeyOther Key = iota
	KeyDown
	KeyUp
	KeyEscape
	KeyTab
)

// Sentinel errors returned by the boundary helpers in this file.
var (
	ErrUnknownKey    = errors.New("unknown key token")
	ErrNegativeIndex = errors.New("item index must not be negative")
)

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyEscape:
		return "escape"
	case KeyTab:
		return "tab"
	default:
		return "other"
	}
}

// ParseKey converts a key token into a Key. Tokens are case-insensitive;
// "esc" is accepted as an alias for "escape".
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return KeyDown, nil
	case "up":
		return KeyUp, nil
	case "escape", "esc":
		return KeyEscape, nil
	case "tab":
		return KeyTab, nil
	case "other":
		return KeyOther, nil
	}
	return KeyOther, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Context identifies where a key event originated: the toggle, or the item
// at a given index.
type Context struct {
	OnItem bool
	Item   int
}

// ToggleContext is the context for events originating on the toggle.
func ToggleContext() Context {
	return Context{Item: NoFocus}
}

// ItemContext is the context for events originating on item i. The index is
// trusted; use NewItemContext when it comes from outside the program.
func ItemContext(i int) Context {
	return Context{OnItem: true, Item: i}
}

// NewItemContext validates i before building an item context.
func NewItemContext(i int) (Context, error) {
	if i < 0 {
		return Context{}, fmt.Errorf("%w: %d", ErrNegativeIndex, i)
	}
	return ItemContext(i), nil
}

func (c Context) String() string {
	if !c.OnItem {
		return "toggle"
	}
	return fmt.Sprintf("item %d", c.Item)
}
