package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 12, H: 3}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{2, 1, true},   // top-left corner
		{13, 1, true},  // last column
		{2, 3, true},   // last row
		{13, 3, true},  // bottom-right corner
		{1, 1, false},  // left of the box
		{14, 1, false}, // width is exclusive
		{2, 0, false},  // above
		{2, 4, false},  // height is exclusive
	}

	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Rect(%+v).Contains(%d, %d) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestHitMap(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("toggle", 0, 0, 12, 3, nil)
	hm.AddRect("menu", 0, 3, 20, 4, nil)
	hm.AddRect("item-1", 0, 4, 20, 1, 1)

	tests := []struct {
		name   string
		x, y   int
		wantID string
	}{
		{"toggle", 5, 1, "toggle"},
		{"item wins over menu", 3, 4, "item-1"},
		{"menu border", 3, 3, "menu"},
		{"miss", 30, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := hm.Test(tt.x, tt.y)
			got := ""
			if r != nil {
				got = r.ID
			}
			if got != tt.wantID {
				t.Errorf("Test(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.wantID)
			}
		})
	}

	if r := hm.Test(3, 4); r == nil || r.Data != 1 {
		t.Errorf("item region data = %v, want 1", r)
	}

	hm.Clear()
	if len(hm.Regions()) != 0 {
		t.Errorf("expected 0 regions after clear, got %d", len(hm.Regions()))
	}
}

func TestHandlerDoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("item-0", 0, 0, 10, 1, nil)
	h.HitMap.AddRect("item-1", 0, 1, 10, 1, nil)

	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }

	if res := h.HandleClick(1, 0); res.Region == nil || res.IsDoubleClick {
		t.Fatalf("first click = %+v", res)
	}
	clock = clock.Add(100 * time.Millisecond)
	if res := h.HandleClick(1, 0); !res.IsDoubleClick {
		t.Error("second quick click should be a double click")
	}
	clock = clock.Add(100 * time.Millisecond)
	if res := h.HandleClick(1, 0); res.IsDoubleClick {
		t.Error("third click should start over")
	}

	clock = clock.Add(100 * time.Millisecond)
	if res := h.HandleClick(1, 1); res.IsDoubleClick {
		t.Error("click on a different region is not a double click")
	}

	clock = clock.Add(time.Second)
	if res := h.HandleClick(1, 1); res.IsDoubleClick {
		t.Error("slow second click is not a double click")
	}

	if res := h.HandleClick(50, 50); res.Region != nil {
		t.Errorf("expected no region on miss, got %v", res.Region)
	}
}

func TestHandleMouse(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want ActionType
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, ActionClick},
		{"right press", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, ActionNone},
		{"motion", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionMotion}, ActionHover},
		{"release", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionRelease}, ActionNone},
		{"wheel up", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, ActionScrollUp},
		{"wheel down", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, ActionScrollDown},
		{"shift wheel up", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp, Shift: true}, ActionScrollLeft},
		{"shift wheel down", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, Shift: true}, ActionScrollRight},
		{"wheel left", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelLeft}, ActionScrollLeft},
		{"wheel right", tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelRight}, ActionScrollRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler()
			h.HitMap.AddRect("toggle", 0, 0, 12, 3, nil)

			action := h.HandleMouse(tt.msg)
			if action.Type != tt.want {
				t.Errorf("type = %v, want %v", action.Type, tt.want)
			}
			if tt.want != ActionNone && (action.Region == nil || action.Region.ID != "toggle") {
				t.Errorf("region = %v, want toggle", action.Region)
			}
		})
	}
}

func TestHandlerClear(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("toggle", 0, 0, 12, 3, nil)
	h.HandleClick(1, 1)

	h.Clear()

	if len(h.HitMap.Regions()) != 0 {
		t.Errorf("expected 0 regions after Clear, got %d", len(h.HitMap.Regions()))
	}
	if h.lastClickID != "" {
		t.Error("Clear should forget the last click")
	}
}
