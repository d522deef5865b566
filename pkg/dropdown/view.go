package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	caretClosed = "▾"
	caretOpen   = "▴"
	cursorMark  = "> "
	ellipsis    = "…"
)

// View renders the toggle and, while expanded, the menu below it. Mouse hit
// regions are rebuilt from the measured output on every call.
func (m Model) View() string {
	m.mouse.HitMap.Clear()

	toggle := m.renderToggle()
	toggleW, toggleH := lipgloss.Width(toggle), lipgloss.Height(toggle)
	m.mouse.HitMap.AddRect(toggleRegion, m.originX, m.originY, toggleW, toggleH, nil)

	if !m.Expanded() {
		return toggle
	}

	menu, rows := m.renderMenu()
	menuY := m.originY + toggleH
	m.mouse.HitMap.AddRect("menu", m.originX, menuY, lipgloss.Width(menu), lipgloss.Height(menu), nil)
	for _, r := range rows {
		// +1 for the top border
		m.mouse.HitMap.AddRect("item:"+m.items[r.index].Key, m.originX, menuY+1+r.line, lipgloss.Width(menu), 1, r.index)
	}

	return lipgloss.JoinVertical(lipgloss.Left, toggle, menu)
}

func (m Model) renderToggle() string {
	caret := Caret.Render(caretClosed)
	if m.Expanded() {
		caret = CaretOpen.Render(caretOpen)
	}

	style := Toggle
	switch {
	case m.focus == FocusToggle:
		style = ToggleFocused
	case m.hoverToggle:
		style = ToggleHover
	}
	return style.Render(m.label + " " + caret)
}

// itemRow records which content line of the menu shows which item.
type itemRow struct {
	index int
	line  int
}

func (m Model) renderMenu() (string, []itemRow) {
	if len(m.items) == 0 {
		return Menu.Render(MutedText.Render("(no items)")), nil
	}

	labelW := m.labelWidth()
	start, end := m.win.bounds(len(m.items))
	focused, hasFocus := m.focus.Item()

	var lines []string
	var rows []itemRow
	if m.win.moreAbove() {
		lines = append(lines, MutedText.Render("↑ more above"))
	}

	for i := start; i < end; i++ {
		item := m.items[i]
		isFocused := hasFocus && focused == i

		style := ItemNormal
		switch {
		case item.Disabled:
			style = ItemDisabled
		case isFocused:
			style = ItemFocused
		case i == m.hover:
			style = ItemHover
		}

		cursor := strings.Repeat(" ", len(cursorMark))
		if isFocused {
			cursor = Cursor.Render(cursorMark)
		}

		label := ansi.Truncate(item.Label, labelW, ellipsis)
		rows = append(rows, itemRow{index: i, line: len(lines)})
		lines = append(lines, cursor+style.Width(labelW).Render(label))
	}

	if m.win.moreBelow(len(m.items)) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	return Menu.Render(strings.Join(lines, "\n")), rows
}

// labelWidth is the fixed width minus border and cursor, or the widest label.
func (m Model) labelWidth() int {
	if m.width > 0 {
		return max(1, m.width-2-len(cursorMark))
	}
	w := 0
	for _, it := range m.items {
		w = max(w, ansi.StringWidth(it.Label))
	}
	return w
}
