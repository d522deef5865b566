package replay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcus/dropdown/internal/disclosure"
)

func effectList(effects []disclosure.Effect) []string {
	out := make([]string, len(effects))
	for i, e := range effects {
		out[i] = e.String()
	}
	return out
}

func focusLabel(s disclosure.State) string {
	if !s.HasFocus() {
		return "none"
	}
	return fmt.Sprintf("%d", s.Focused)
}

func (e Entry) outcome() string {
	switch {
	case e.Selected == "":
		return ""
	case e.Prevented:
		return e.Selected + " (prevented)"
	default:
		return e.Selected
	}
}

// Text renders the transcript as aligned plain text, one line per step.
func (t Transcript) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "menu %s (toggle %s, menu %s)\n", t.Menu, t.ToggleID, t.MenuID)

	width := 0
	for _, e := range t.Entries {
		width = max(width, len(e.Line))
	}
	for _, e := range t.Entries {
		effects := "-"
		if len(e.Effects) > 0 {
			effects = strings.Join(effectList(e.Effects), ", ")
		}
		fmt.Fprintf(&sb, "%3d  %-*s  %s  [%s]", e.Step, width, e.Line, effects, e.State)
		if o := e.outcome(); o != "" {
			fmt.Fprintf(&sb, "  select=%s", o)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders the transcript as a markdown table.
func (t Transcript) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", t.Menu)
	fmt.Fprintf(&sb, "Toggle `%s` controls menu `%s`.\n\n", t.ToggleID, t.MenuID)
	sb.WriteString("| # | Step | Effects | Open | Focused | Selection |\n")
	sb.WriteString("|---|------|---------|------|---------|-----------|\n")
	for _, e := range t.Entries {
		effects := make([]string, len(e.Effects))
		for i, s := range effectList(e.Effects) {
			effects[i] = "`" + s + "`"
		}
		fmt.Fprintf(&sb, "| %d | `%s` | %s | %t | %s | %s |\n",
			e.Step, e.Line, strings.Join(effects, " "), e.State.Open, focusLabel(e.State), e.outcome())
	}
	return sb.String()
}

type entryJSON struct {
	Step      int      `json:"step"`
	Line      string   `json:"line"`
	Effects   []string `json:"effects"`
	Open      bool     `json:"open"`
	ItemCount int      `json:"item_count"`
	Focused   *int     `json:"focused"`
	Selected  string   `json:"selected,omitempty"`
	Prevented bool     `json:"prevented,omitempty"`
}

// MarshalJSON encodes effects by name and an unfocused menu as a null
// focused index.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		Step:      e.Step,
		Line:      e.Line,
		Effects:   effectList(e.Effects),
		Open:      e.State.Open,
		ItemCount: e.State.ItemCount,
		Selected:  e.Selected,
		Prevented: e.Prevented,
	}
	if e.State.HasFocus() {
		f := e.State.Focused
		out.Focused = &f
	}
	return json.Marshal(out)
}

// JSON renders the transcript as indented JSON.
func (t Transcript) JSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		Menu     string  `json:"menu"`
		ToggleID string  `json:"toggle_id"`
		MenuID   string  `json:"menu_id"`
		Entries  []Entry `json:"entries"`
	}{t.Menu, t.ToggleID, t.MenuID, t.Entries}, "", "  ")
}
