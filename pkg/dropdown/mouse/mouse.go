// Package mouse maps terminal mouse events onto rendered screen regions.
//
// Regions are registered after rendering, from the measured positions of
// what was drawn, so hit testing always matches the visible layout.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDoubleClickWindow is the maximum gap between two clicks on the same
// region for the second to count as a double click.
const DefaultDoubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit target with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render. Regions added later win
// when they overlap earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// Action is the interpreted form of a tea.MouseMsg.
type Action struct {
	Type          ActionType
	Region        *Region
	X, Y          int
	IsDoubleClick bool
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler interprets mouse messages against a HitMap.
type Handler struct {
	HitMap            *HitMap
	DoubleClickWindow time.Duration

	now         func() time.Time
	lastClickID string
	lastClickAt time.Time
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{
		HitMap:            NewHitMap(),
		DoubleClickWindow: DefaultDoubleClickWindow,
		now:               time.Now,
	}
}

// Clear drops all regions and forgets the last click.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.lastClickID = ""
	h.lastClickAt = time.Time{}
}

// HandleClick hit-tests a left click and detects double clicks. A double
// click resets the tracker so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := h.now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickAt) <= h.DoubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickAt = time.Time{}
	} else {
		h.lastClickID = region.ID
		h.lastClickAt = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse converts a bubbletea mouse message into an Action. Shift turns
// vertical wheel motion into horizontal scrolling.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{X: msg.X, Y: msg.Y}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		action.Type = ActionScrollUp
		if msg.Shift {
			action.Type = ActionScrollLeft
		}
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		return action
	case tea.MouseButtonWheelDown:
		action.Type = ActionScrollDown
		if msg.Shift {
			action.Type = ActionScrollRight
		}
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		return action
	case tea.MouseButtonWheelLeft:
		action.Type = ActionScrollLeft
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		return action
	case tea.MouseButtonWheelRight:
		action.Type = ActionScrollRight
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		return action
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return action
		}
		res := h.HandleClick(msg.X, msg.Y)
		action.Type = ActionClick
		action.Region = res.Region
		action.IsDoubleClick = res.IsDoubleClick
	case tea.MouseActionMotion:
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)
	}
	return action
}
