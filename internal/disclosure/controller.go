// Package disclosure implements the open/closed and focus state machine of a
// dropdown button.
//
// A Controller owns one menu's State. It consumes normalized input (toggle
// activation, key tokens with their origin, selection attempts) and answers
// each with the list of Effects the presentation layer must apply: open or
// close the menu, move focus to an item, return focus to the toggle, or let
// focus progress to the next focusable element.
//
// The controller is synchronous and single-threaded. Each operation runs to
// completion, including every selection handler, before it returns.
package disclosure

import (
	"log/slog"

	"github.com/marcus/dropdown/internal/selection"
)

// Controller is the state machine for a single dropdown. It is not safe for
// concurrent use.
type Controller struct {
	state    State
	handlers []selection.Handler
	listener Listener
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithItemCount sets the initial number of items.
func WithItemCount(n int) Option {
	return func(c *Controller) {
		c.state.ItemCount = n
	}
}

// WithListener delivers every emitted effect to l in addition to returning it.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// WithLogger sets the logger used for transition and invariant logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a closed controller with no focused item.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:  State{Focused: NoFocus},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.checkInvariants("New")
	return c
}

// OnSelect registers a selection handler. Handlers run in registration order.
func (c *Controller) OnSelect(h selection.Handler) *Controller {
	c.handlers = append(c.handlers, h)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// ActivateToggle flips the menu between open and closed. Opening does not
// focus an item; closing clears item focus.
func (c *Controller) ActivateToggle() []Effect {
	if c.state.Open {
		return c.close("ActivateToggle")
	}
	c.state.Open = true
	c.commit("ActivateToggle")
	return c.emit(kind(EffectMenuOpened))
}

// OnKey handles a normalized key press originating in ctx. Combinations with
// no defined transition are ignored and return no effects.
func (c *Controller) OnKey(ctx Context, key Key) []Effect {
	if !c.state.Open {
		if key == KeyDown && !ctx.OnItem {
			return c.openFromKeyboard()
		}
		return nil
	}

	switch key {
	case KeyDown:
		return c.move(ctx, 1)
	case KeyUp:
		return c.move(ctx, -1)
	case KeyEscape:
		return c.close("escape", kind(EffectFocusReturnedToToggle))
	case KeyTab:
		return c.close("tab", kind(EffectFocusAllowedToProgress))
	}
	return nil
}

// AttemptSelect runs the registered handlers over a fresh selection event
// for itemKey. If no handler requested prevention the menu closes and focus
// returns to the toggle; otherwise nothing changes and no effects are
// emitted.
func (c *Controller) AttemptSelect(itemKey string) (prevented bool, effects []Effect) {
	ev := selection.New(itemKey)
	if selection.Dispatch(ev, c.handlers) {
		c.logger.Debug("disclosure: selection prevented", "item", itemKey)
		return true, nil
	}

	c.logger.Debug("disclosure: selection committed", "item", itemKey)
	if !c.state.Open {
		return false, c.emit(kind(EffectFocusReturnedToToggle))
	}
	return false, c.close("select", kind(EffectFocusReturnedToToggle))
}

// SetItemCount updates the number of items. A focused index that no longer
// exists is cleared.
func (c *Controller) SetItemCount(n int) {
	c.state.ItemCount = n
	if n >= 0 && c.state.Focused >= n {
		c.state.Focused = NoFocus
	}
	c.commit("SetItemCount")
}

// Close dismisses an open menu without moving focus, for hosts that close
// the menu in response to something outside it (a click elsewhere, the
// window losing focus).
func (c *Controller) Close() []Effect {
	if !c.state.Open {
		return nil
	}
	return c.close("Close")
}

func (c *Controller) openFromKeyboard() []Effect {
	c.state.Open = true
	effects := []Effect{kind(EffectMenuOpened)}
	if c.state.ItemCount > 0 {
		c.state.Focused = 0
		effects = append(effects, focusMoved(0))
	}
	c.commit("open")
	return c.emit(effects...)
}

// move advances focus by step with wraparound. An item context is taken as
// the authoritative focus position; a toggle context starts from no focus so
// that down lands on the first item and up on the last.
func (c *Controller) move(ctx Context, step int) []Effect {
	n := c.state.ItemCount
	if n <= 0 {
		return nil
	}

	current := c.state.Focused
	if !ctx.OnItem {
		current = NoFocus
	} else if ctx.Item >= 0 && ctx.Item < n {
		current = ctx.Item
	}

	var next int
	switch {
	case current == NoFocus && step > 0:
		next = 0
	case current == NoFocus:
		next = n - 1
	default:
		next = ((current+step)%n + n) % n
	}

	c.state.Focused = next
	c.commit("move")
	return c.emit(focusMoved(next))
}

func (c *Controller) close(op string, extra ...Effect) []Effect {
	wasOpen := c.state.Open
	c.state.Open = false
	c.state.Focused = NoFocus
	c.commit(op)

	var effects []Effect
	if wasOpen {
		effects = append(effects, kind(EffectMenuClosed))
	}
	effects = append(effects, extra...)
	return c.emit(effects...)
}

func (c *Controller) commit(op string) {
	c.checkInvariants(op)
	c.logger.Debug("disclosure: transition", "op", op, "open", c.state.Open, "items", c.state.ItemCount, "focused", c.state.Focused)
}

func (c *Controller) checkInvariants(op string) {
	reason := c.state.violation()
	if reason == "" {
		return
	}
	c.onViolation(&InvariantError{Op: op, State: c.state, Reason: reason})
}

func (c *Controller) emit(effects ...Effect) []Effect {
	if c.listener != nil {
		for _, e := range effects {
			c.listener(e)
		}
	}
	return effects
}
