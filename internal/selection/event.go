// Package selection defines the event passed to consumer callbacks when an
// item of a disclosure menu is chosen.
//
// An Event carries the key of the item being selected and a single mutable
// flag. Any handler in the chain may call RequestPrevention to veto the
// default action; handlers do not coordinate with each other and every
// handler observes the same event.
package selection

// Event is created once per selection attempt and discarded after all
// handlers have run. The item key is fixed at construction.
type Event struct {
	itemKey   string
	prevented bool
}

// New creates an event for the given item with prevention not requested.
func New(itemKey string) *Event {
	return &Event{itemKey: itemKey}
}

// ItemKey returns the key of the item being selected.
func (e *Event) ItemKey() string {
	return e.itemKey
}

// RequestPrevention vetoes the default action. Calling it more than once,
// or from several handlers, has the same effect as calling it once.
func (e *Event) RequestPrevention() {
	e.prevented = true
}

// IsPreventionRequested reports whether any handler has vetoed the selection.
func (e *Event) IsPreventionRequested() bool {
	return e.prevented
}

// Handler is a consumer callback. Prevention is communicated only through
// the event; there is no return value.
type Handler func(*Event)

// Dispatch runs every handler in order, exactly once each, and reports
// whether prevention was requested. A handler that vetoes does not stop the
// handlers registered after it. Nil handlers are skipped.
func Dispatch(ev *Event, handlers []Handler) bool {
	for _, h := range handlers {
		if h == nil {
			continue
		}
		h(ev)
	}
	return ev.IsPreventionRequested()
}

// PreventKeys returns a handler that vetoes selection of any of the given keys.
func PreventKeys(keys ...string) Handler {
	blocked := make(map[string]bool, len(keys))
	for _, k := range keys {
		blocked[k] = true
	}
	return func(ev *Event) {
		if blocked[ev.ItemKey()] {
			ev.RequestPrevention()
		}
	}
}
