package disclosure

import (
	"reflect"
	"testing"

	"github.com/marcus/dropdown/internal/selection"
)

// press sends key from wherever focus currently is: the focused item, or
// the toggle when no item holds focus.
func press(c *Controller, key Key) []Effect {
	st := c.State()
	if st.HasFocus() {
		return c.OnKey(ItemContext(st.Focused), key)
	}
	return c.OnKey(ToggleContext(), key)
}

func openAt(t *testing.T, n, focused int) *Controller {
	t.Helper()
	c := New(WithItemCount(n))
	press(c, KeyDown)
	for c.State().Focused != focused {
		press(c, KeyDown)
	}
	return c
}

func assertState(t *testing.T, c *Controller, open bool, focused int) {
	t.Helper()
	st := c.State()
	if st.Open != open || st.Focused != focused {
		t.Errorf("state = %s, want open=%t focused=%d", st, open, focused)
	}
}

func assertEffects(t *testing.T, got []Effect, want ...Effect) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestNewControllerIsClosed(t *testing.T) {
	c := New(WithItemCount(3))
	assertState(t, c, false, NoFocus)
	if c.State().ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", c.State().ItemCount)
	}
}

func TestActivateToggle(t *testing.T) {
	c := New(WithItemCount(3))

	effects := c.ActivateToggle()
	assertState(t, c, true, NoFocus)
	assertEffects(t, effects, kind(EffectMenuOpened))

	effects = c.ActivateToggle()
	assertState(t, c, false, NoFocus)
	assertEffects(t, effects, kind(EffectMenuClosed))
}

func TestActivateToggleTwiceFromClosed(t *testing.T) {
	c := New(WithItemCount(3))
	c.ActivateToggle()
	c.ActivateToggle()
	assertState(t, c, false, NoFocus)
}

func TestActivateToggleClosingClearsFocus(t *testing.T) {
	c := openAt(t, 3, 2)
	c.ActivateToggle()
	assertState(t, c, false, NoFocus)
	if c.State().ItemCount != 3 {
		t.Errorf("ItemCount changed to %d", c.State().ItemCount)
	}
}

func TestDownOnClosedToggleOpensAndFocusesFirst(t *testing.T) {
	c := New(WithItemCount(3))
	effects := c.OnKey(ToggleContext(), KeyDown)
	assertState(t, c, true, 0)
	assertEffects(t, effects, kind(EffectMenuOpened), focusMoved(0))
}

func TestDownOnClosedToggleWithNoItems(t *testing.T) {
	c := New()
	effects := c.OnKey(ToggleContext(), KeyDown)
	assertState(t, c, true, NoFocus)
	assertEffects(t, effects, kind(EffectMenuOpened))
}

func TestDownOnOpenToggleFocusesFirstItem(t *testing.T) {
	c := New(WithItemCount(3))
	c.ActivateToggle()

	effects := c.OnKey(ToggleContext(), KeyDown)
	assertState(t, c, true, 0)
	assertEffects(t, effects, focusMoved(0))
}

func TestUpOnOpenToggleFocusesLastItem(t *testing.T) {
	c := New(WithItemCount(3))
	c.ActivateToggle()

	c.OnKey(ToggleContext(), KeyUp)
	assertState(t, c, true, 2)
}

func TestClosedIgnoresKeysOtherThanDownOnToggle(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		key  Key
	}{
		{"up on toggle", ToggleContext(), KeyUp},
		{"escape on toggle", ToggleContext(), KeyEscape},
		{"tab on toggle", ToggleContext(), KeyTab},
		{"other on toggle", ToggleContext(), KeyOther},
		{"down on item", ItemContext(0), KeyDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithItemCount(3))
			effects := c.OnKey(tt.ctx, tt.key)
			if len(effects) != 0 {
				t.Errorf("expected no effects, got %v", effects)
			}
			assertState(t, c, false, NoFocus)
		})
	}
}

func TestOpenIgnoresOtherKey(t *testing.T) {
	c := openAt(t, 3, 1)
	effects := press(c, KeyOther)
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", effects)
	}
	assertState(t, c, true, 1)
}

func TestOpenWithNoItemsIgnoresTraversal(t *testing.T) {
	c := New()
	c.ActivateToggle()
	for _, key := range []Key{KeyDown, KeyUp} {
		if effects := c.OnKey(ToggleContext(), key); len(effects) != 0 {
			t.Errorf("%s with no items: expected no effects, got %v", key, effects)
		}
	}
	assertState(t, c, true, NoFocus)
}

func TestDownWraparoundCycleLaw(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for k := 0; k < n; k++ {
			c := openAt(t, n, k)
			for i := 0; i < n; i++ {
				press(c, KeyDown)
			}
			if got := c.State().Focused; got != k {
				t.Errorf("n=%d k=%d: after %d downs focused=%d, want %d", n, k, n, got, k)
			}
			if !c.State().Open {
				t.Errorf("n=%d k=%d: down closed the menu", n, k)
			}
		}
	}
}

func TestUpWraparoundCycleLaw(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for k := 0; k < n; k++ {
			c := openAt(t, n, k)
			for i := 0; i < n; i++ {
				press(c, KeyUp)
			}
			if got := c.State().Focused; got != k {
				t.Errorf("n=%d k=%d: after %d ups focused=%d, want %d", n, k, n, got, k)
			}
		}
	}
}

func TestUpFromFirstWrapsToLast(t *testing.T) {
	for n := 1; n <= 6; n++ {
		c := openAt(t, n, 0)
		effects := press(c, KeyUp)
		assertState(t, c, true, n-1)
		assertEffects(t, effects, focusMoved(n-1))
	}
}

func TestItemContextIsAuthoritative(t *testing.T) {
	c := openAt(t, 4, 0)
	c.OnKey(ItemContext(2), KeyDown)
	assertState(t, c, true, 3)
}

func TestEscapeClosesAndReturnsFocusFromAnyItem(t *testing.T) {
	for k := 0; k < 3; k++ {
		c := openAt(t, 3, k)
		effects := press(c, KeyEscape)
		assertState(t, c, false, NoFocus)
		assertEffects(t, effects, kind(EffectMenuClosed), kind(EffectFocusReturnedToToggle))
	}
}

func TestEscapeFromOpenToggle(t *testing.T) {
	c := New(WithItemCount(3))
	c.ActivateToggle()
	effects := c.OnKey(ToggleContext(), KeyEscape)
	assertState(t, c, false, NoFocus)
	assertEffects(t, effects, kind(EffectMenuClosed), kind(EffectFocusReturnedToToggle))
}

func TestTabClosesAndAllowsProgression(t *testing.T) {
	for k := 0; k < 3; k++ {
		c := openAt(t, 3, k)
		effects := press(c, KeyTab)
		assertState(t, c, false, NoFocus)
		assertEffects(t, effects, kind(EffectMenuClosed), kind(EffectFocusAllowedToProgress))
		for _, e := range effects {
			if e.Kind == EffectFocusReturnedToToggle {
				t.Error("tab must never return focus to the toggle")
			}
		}
	}
}

func TestTabFromOpenToggle(t *testing.T) {
	c := New(WithItemCount(2))
	c.ActivateToggle()
	effects := c.OnKey(ToggleContext(), KeyTab)
	assertState(t, c, false, NoFocus)
	assertEffects(t, effects, kind(EffectMenuClosed), kind(EffectFocusAllowedToProgress))
}

func TestAttemptSelectWithoutHandlersCommits(t *testing.T) {
	c := openAt(t, 3, 1)
	prevented, effects := c.AttemptSelect("b")
	if prevented {
		t.Error("selection with no handlers should not be prevented")
	}
	assertState(t, c, false, NoFocus)
	assertEffects(t, effects, kind(EffectMenuClosed), kind(EffectFocusReturnedToToggle))
}

func TestAttemptSelectPrevented(t *testing.T) {
	c := openAt(t, 3, 1)

	calls := make([]int, 3)
	c.OnSelect(func(ev *selection.Event) { calls[0]++ }).
		OnSelect(func(ev *selection.Event) {
			calls[1]++
			ev.RequestPrevention()
		}).
		OnSelect(func(ev *selection.Event) { calls[2]++ })

	prevented, effects := c.AttemptSelect("b")
	if !prevented {
		t.Error("expected selection to be prevented")
	}
	if len(effects) != 0 {
		t.Errorf("prevented selection emitted effects: %v", effects)
	}
	assertState(t, c, true, 1)

	for i, n := range calls {
		if n != 1 {
			t.Errorf("handler %d ran %d times, want 1", i, n)
		}
	}
}

func TestAttemptSelectHandlersSeeItemKey(t *testing.T) {
	c := openAt(t, 3, 0)
	var seen []string
	c.OnSelect(func(ev *selection.Event) { seen = append(seen, ev.ItemKey()) })
	c.OnSelect(func(ev *selection.Event) { seen = append(seen, ev.ItemKey()) })

	c.AttemptSelect("a")
	if !reflect.DeepEqual(seen, []string{"a", "a"}) {
		t.Errorf("handlers saw %v, want [a a]", seen)
	}
}

func TestAttemptSelectFreshEventPerAttempt(t *testing.T) {
	c := openAt(t, 3, 0)
	var events []*selection.Event
	preventFirst := true
	c.OnSelect(func(ev *selection.Event) {
		events = append(events, ev)
		if preventFirst {
			ev.RequestPrevention()
			preventFirst = false
		}
	})

	if prevented, _ := c.AttemptSelect("a"); !prevented {
		t.Fatal("first attempt should be prevented")
	}
	if prevented, _ := c.AttemptSelect("a"); prevented {
		t.Error("second attempt should start with a clear flag")
	}
	if len(events) != 2 || events[0] == events[1] {
		t.Error("each attempt should construct a new event")
	}
}

func TestClosingAlwaysClearsFocus(t *testing.T) {
	closers := map[string]func(c *Controller){
		"toggle": func(c *Controller) { c.ActivateToggle() },
		"escape": func(c *Controller) { press(c, KeyEscape) },
		"tab":    func(c *Controller) { press(c, KeyTab) },
		"select": func(c *Controller) { c.AttemptSelect("x") },
		"close":  func(c *Controller) { c.Close() },
	}

	for name, closeFn := range closers {
		t.Run(name, func(t *testing.T) {
			c := openAt(t, 4, 2)
			closeFn(c)
			assertState(t, c, false, NoFocus)
		})
	}
}

func TestCloseWithoutFocusReturn(t *testing.T) {
	c := openAt(t, 3, 1)
	effects := c.Close()
	assertEffects(t, effects, kind(EffectMenuClosed))

	if effects := c.Close(); len(effects) != 0 {
		t.Errorf("Close on a closed menu emitted %v", effects)
	}
}

func TestSetItemCount(t *testing.T) {
	tests := []struct {
		name        string
		focused     int
		newCount    int
		wantFocused int
	}{
		{"focus still in range", 1, 3, 1},
		{"focus at new end is cleared", 2, 2, NoFocus},
		{"shrink to zero", 0, 0, NoFocus},
		{"grow keeps focus", 2, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := openAt(t, 3, tt.focused)
			c.SetItemCount(tt.newCount)
			st := c.State()
			if st.ItemCount != tt.newCount {
				t.Errorf("ItemCount = %d, want %d", st.ItemCount, tt.newCount)
			}
			if st.Focused != tt.wantFocused {
				t.Errorf("Focused = %d, want %d", st.Focused, tt.wantFocused)
			}
			if !st.Open {
				t.Error("SetItemCount should not close the menu")
			}
		})
	}
}

func TestListenerReceivesEffectsInOrder(t *testing.T) {
	var got []Effect
	c := New(WithItemCount(2), WithListener(func(e Effect) { got = append(got, e) }))

	c.OnKey(ToggleContext(), KeyDown)
	press(c, KeyDown)
	press(c, KeyEscape)

	want := []Effect{
		kind(EffectMenuOpened),
		focusMoved(0),
		focusMoved(1),
		kind(EffectMenuClosed),
		kind(EffectFocusReturnedToToggle),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("listener got %v, want %v", got, want)
	}
}

func TestScenarioDownTraversalWraps(t *testing.T) {
	c := New(WithItemCount(3))
	assertState(t, c, false, NoFocus)

	c.OnKey(ToggleContext(), KeyDown)
	assertState(t, c, true, 0)

	press(c, KeyDown)
	press(c, KeyDown)
	assertState(t, c, true, 2)

	press(c, KeyDown)
	assertState(t, c, true, 0)
}

func TestScenarioUpFromFirst(t *testing.T) {
	c := openAt(t, 3, 0)
	press(c, KeyUp)
	assertState(t, c, true, 2)
}

func TestScenarioPreventedSelectLeavesStateUnchanged(t *testing.T) {
	c := openAt(t, 3, 1)
	c.OnSelect(func(ev *selection.Event) { ev.RequestPrevention() })

	c.AttemptSelect("b")
	assertState(t, c, true, 1)
}
