// Package dropdown renders a disclosure-style dropdown button for bubbletea
// programs: a toggle that opens a menu of items, with keyboard navigation,
// mouse support and accessibility relations between toggle and menu.
//
// All open/close and focus decisions are made by the disclosure controller;
// the Model only translates terminal input into controller input and applies
// the effects that come back.
//
// # Quick Start
//
//	dd, err := dropdown.New("Actions", []dropdown.Item{
//	    {Key: "edit", Label: "Edit"},
//	    {Key: "delete", Label: "Delete"},
//	}, dropdown.WithHandlers(selection.PreventKeys("delete")))
//
//	// In Update():
//	switch msg := msg.(type) {
//	case dropdown.SelectedMsg:
//	    return m.run(msg.Key)
//	case dropdown.FocusNextMsg:
//	    m.focusNext()
//	}
//	m.dd, cmd = m.dd.Update(msg)
//
//	// In View():
//	m.dd.SetOrigin(x, y)
//	content := m.dd.View()
//
// # Keys
//
//   - enter/space - open or close on the toggle, select on an item
//   - down/j - open with the first item focused, or move to the next item
//   - up/k - move to the previous item
//   - esc - close and return focus to the toggle
//   - tab - close and let focus leave the dropdown (FocusNextMsg)
//
// Navigation wraps around at both ends of the menu.
//
// # Options
//
//   - WithIDProvider(p) - toggle id source (default: random "dd-" ids)
//   - WithHandlers(h...) - selection handlers; any may veto a selection
//   - WithKeyMap(k) - custom bindings
//   - WithMaxVisible(n) - rows shown before the menu scrolls (default: 6)
//   - WithWidth(w) - fixed menu width, labels truncated to fit
//   - WithRecorder(r) - record every selection attempt
//   - WithLogger(l) - structured logger for transitions
package dropdown
