package dropdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/dropdown/internal/disclosure"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/ident"
	"github.com/marcus/dropdown/internal/selection"
	"github.com/marcus/dropdown/pkg/dropdown/mouse"
)

// ErrNoIDProvider is returned by New when the id provider option is nil.
var ErrNoIDProvider = errors.New("dropdown: nil id provider")

const toggleRegion = "toggle"

type focusKind int

const (
	focusToggle focusKind = iota
	focusItem
	focusOutside
)

// Focus identifies which element of the dropdown, if any, has focus.
type Focus struct {
	kind focusKind
	item int
}

var (
	// FocusToggle is focus on the toggle button.
	FocusToggle = Focus{kind: focusToggle}
	// FocusOutside means focus has left the dropdown.
	FocusOutside = Focus{kind: focusOutside}
)

// FocusItem is focus on the item at index i.
func FocusItem(i int) Focus {
	return Focus{kind: focusItem, item: i}
}

// Item returns the focused item index, if focus is on an item.
func (f Focus) Item() (int, bool) {
	return f.item, f.kind == focusItem
}

func (f Focus) String() string {
	switch f.kind {
	case focusItem:
		return fmt.Sprintf("item %d", f.item)
	case focusOutside:
		return "outside"
	default:
		return "toggle"
	}
}

// FocusNextMsg asks the host to move focus to the next focusable component
// after the dropdown with the given toggle id.
type FocusNextMsg struct {
	ID string
}

// SelectedMsg reports a committed selection.
type SelectedMsg struct {
	ID  string
	Key string
}

// PreventedMsg reports a selection vetoed by a handler. The menu stays as
// it was.
type PreventedMsg struct {
	ID  string
	Key string
}

// RecordErrMsg reports a failure to record a selection attempt.
type RecordErrMsg struct {
	Err error
}

// Attrs are the accessibility relations of a dropdown: the toggle with the
// given ID controls the menu Owns, which is labelled by the toggle.
type Attrs struct {
	ID         string
	Expanded   bool
	Owns       string
	LabelledBy string
}

// Model is a bubbletea component rendering one dropdown.
//
// Model is passed by value like other bubbles components, but its open state,
// focused item and hit regions live behind pointers, so every copy shares
// them. Keep the Model returned by Update and read State for a snapshot.
type Model struct {
	id     string
	menuID string
	label  string
	items  []Item

	ctrl     *disclosure.Controller
	keys     KeyMap
	mouse    *mouse.Handler
	recorder history.Recorder
	logger   *slog.Logger

	focus       Focus
	hover       int
	hoverToggle bool
	win         window
	width       int
	originX     int
	originY     int
	now         func() time.Time
}

type settings struct {
	ids        ident.Provider
	handlers   []selection.Handler
	keys       KeyMap
	maxVisible int
	width      int
	logger     *slog.Logger
	recorder   history.Recorder
}

// Option configures a Model.
type Option func(*settings)

// WithIDProvider sets the provider of the toggle id.
func WithIDProvider(p ident.Provider) Option {
	return func(s *settings) { s.ids = p }
}

// WithHandlers registers selection handlers, run in order on every attempt.
func WithHandlers(handlers ...selection.Handler) Option {
	return func(s *settings) { s.handlers = append(s.handlers, handlers...) }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(s *settings) { s.keys = k }
}

// WithMaxVisible sets how many items are shown before the menu scrolls.
func WithMaxVisible(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithWidth fixes the menu width; longer labels are truncated.
func WithWidth(w int) Option {
	return func(s *settings) { s.width = w }
}

// WithLogger sets the logger passed to the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithRecorder records every selection attempt and its outcome.
func WithRecorder(r history.Recorder) Option {
	return func(s *settings) { s.recorder = r }
}

// New creates a closed dropdown with focus on its toggle.
func New(label string, items []Item, opts ...Option) (Model, error) {
	s := settings{
		ids:        ident.Random{},
		keys:       DefaultKeyMap(),
		maxVisible: defaultMaxVisible,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.ids == nil {
		return Model{}, ErrNoIDProvider
	}

	id, err := s.ids.NewID()
	if err != nil {
		return Model{}, fmt.Errorf("dropdown: toggle id: %w", err)
	}

	ctrl := disclosure.New(
		disclosure.WithItemCount(len(items)),
		disclosure.WithLogger(s.logger.With("dropdown", id)),
	)
	for _, h := range s.handlers {
		ctrl.OnSelect(h)
	}

	return Model{
		id:       id,
		menuID:   ident.MenuID(id),
		label:    label,
		items:    items,
		ctrl:     ctrl,
		keys:     s.keys,
		mouse:    mouse.NewHandler(),
		recorder: s.recorder,
		logger:   s.logger,
		focus:    FocusToggle,
		hover:    -1,
		win:      window{maxVisible: s.maxVisible},
		width:    s.width,
		now:      time.Now,
	}, nil
}

// ID returns the toggle id.
func (m Model) ID() string { return m.id }

// MenuID returns the menu id.
func (m Model) MenuID() string { return m.menuID }

// Expanded reports whether the menu is open.
func (m Model) Expanded() bool { return m.ctrl.State().Open }

// State returns the controller state.
func (m Model) State() disclosure.State { return m.ctrl.State() }

// FocusOwner returns the element that has focus.
func (m Model) FocusOwner() Focus { return m.focus }

// Items returns the menu items.
func (m Model) Items() []Item { return m.items }

// KeyMap returns the active key bindings.
func (m Model) KeyMap() KeyMap { return m.keys }

// Attrs returns the accessibility relations.
func (m Model) Attrs() Attrs {
	return Attrs{
		ID:         m.id,
		Expanded:   m.Expanded(),
		Owns:       m.menuID,
		LabelledBy: m.id,
	}
}

// Focused reports whether the dropdown holds focus.
func (m Model) Focused() bool { return m.focus != FocusOutside }

// Focus gives focus to the toggle, as when the host tabs into the dropdown.
func (m *Model) Focus() {
	m.focus = FocusToggle
}

// Blur drops focus, closing the menu if it is open.
func (m *Model) Blur() {
	m.applyEffects(m.ctrl.Close())
	m.focus = FocusOutside
}

// SetItems replaces the items. An item focus that no longer exists falls
// back to the toggle.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.ctrl.SetItemCount(len(items))
	if i, ok := m.focus.Item(); ok && i >= len(items) {
		m.focus = FocusToggle
	}
	if m.hover >= len(items) {
		m.hover = -1
	}
	m.win = m.win.clamp(len(items))
}

// SetOrigin sets the screen position the dropdown is drawn at, so mouse
// events can be matched against it.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Init implements the bubbletea component contract.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and mouse messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.focus == FocusOutside {
		return m, nil
	}

	token, activate := m.keys.Normalize(msg)
	if activate {
		if i, ok := m.focus.Item(); ok {
			return m.attemptSelect(i)
		}
		return m, m.applyEffects(m.ctrl.ActivateToggle())
	}
	if token == disclosure.KeyOther {
		return m, nil
	}

	origin := disclosure.ToggleContext()
	if i, ok := m.focus.Item(); ok {
		origin = disclosure.ItemContext(i)
	}
	return m, m.applyEffects(m.ctrl.OnKey(origin, token))
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	action := m.mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick:
		if action.Region == nil {
			if m.Expanded() {
				m.Blur()
			}
			return m, nil
		}
		if action.Region.ID == toggleRegion {
			m.focus = FocusToggle
			return m, m.applyEffects(m.ctrl.ActivateToggle())
		}
		if i, ok := action.Region.Data.(int); ok {
			return m.attemptSelect(i)
		}

	case mouse.ActionHover:
		m.hover = -1
		m.hoverToggle = false
		if action.Region != nil {
			if i, ok := action.Region.Data.(int); ok {
				m.hover = i
			} else if action.Region.ID == toggleRegion {
				m.hoverToggle = true
			}
		}

	case mouse.ActionScrollUp:
		if m.Expanded() && action.Region != nil {
			m.win = m.win.scroll(-1, len(m.items))
		}

	case mouse.ActionScrollDown:
		if m.Expanded() && action.Region != nil {
			m.win = m.win.scroll(1, len(m.items))
		}
	}
	return m, nil
}

func (m Model) attemptSelect(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.items) || m.items[i].Disabled {
		return m, nil
	}
	key := m.items[i].Key

	prevented, effects := m.ctrl.AttemptSelect(key)
	cmds := []tea.Cmd{m.applyEffects(effects), m.record(key, prevented)}
	id := m.id
	if prevented {
		cmds = append(cmds, func() tea.Msg { return PreventedMsg{ID: id, Key: key} })
	} else {
		cmds = append(cmds, func() tea.Msg { return SelectedMsg{ID: id, Key: key} })
	}
	return m, tea.Batch(cmds...)
}

func (m Model) record(key string, prevented bool) tea.Cmd {
	if m.recorder == nil {
		return nil
	}
	rec := m.recorder
	a := history.Attempt{MenuID: m.menuID, ItemKey: key, Prevented: prevented, At: m.now()}
	logger := m.logger
	return func() tea.Msg {
		if _, err := rec.Record(context.Background(), a); err != nil {
			logger.Error("dropdown: record attempt", "item", a.ItemKey, "err", err)
			return RecordErrMsg{Err: err}
		}
		return nil
	}
}

// applyEffects moves presentation focus as the controller instructs.
func (m *Model) applyEffects(effects []disclosure.Effect) tea.Cmd {
	var cmd tea.Cmd
	for _, e := range effects {
		switch e.Kind {
		case disclosure.EffectMenuOpened:
			m.win = m.win.clamp(len(m.items))
		case disclosure.EffectMenuClosed:
			m.hover = -1
			if _, ok := m.focus.Item(); ok {
				m.focus = FocusToggle
			}
		case disclosure.EffectFocusMoved:
			if e.Index == disclosure.FocusToggle {
				m.focus = FocusToggle
				continue
			}
			m.focus = FocusItem(e.Index)
			m.win = m.win.reveal(e.Index, len(m.items))
		case disclosure.EffectFocusReturnedToToggle:
			m.focus = FocusToggle
		case disclosure.EffectFocusAllowedToProgress:
			m.focus = FocusOutside
			id := m.id
			cmd = func() tea.Msg { return FocusNextMsg{ID: id} }
		}
	}
	return cmd
}
