package replay

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/disclosure"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/ident"
	"github.com/marcus/dropdown/internal/input"
	"github.com/marcus/dropdown/internal/selection"
)

type recorder struct {
	attempts []history.Attempt
	err      error
}

func (r *recorder) Record(_ context.Context, a history.Attempt) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.attempts = append(r.attempts, a)
	return int64(len(r.attempts)), nil
}

func menu(t *testing.T, name string) config.Menu {
	t.Helper()
	m, ok := config.Default().Find(name)
	if !ok {
		t.Fatalf("default config has no %q menu", name)
	}
	return m
}

func steps(t *testing.T, lines ...string) []input.Step {
	t.Helper()
	s, err := input.ParseSteps(lines)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	return s
}

func run(t *testing.T, m config.Menu, opts Options, lines ...string) Transcript {
	t.Helper()
	if opts.IDs == nil {
		opts.IDs = &ident.Sequence{Prefix: "t-"}
	}
	tr, err := Run(context.Background(), m, steps(t, lines...), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return tr
}

func effectNames(e Entry) []string {
	return effectList(e.Effects)
}

func TestRunNavigation(t *testing.T) {
	tr := run(t, menu(t, "actions"), Options{},
		"toggle",
		"key down",
		"key down",
		"key up item 0",
		"key tab",
	)

	if tr.ToggleID != "t-1" || tr.MenuID != "t-1-menu" {
		t.Errorf("ids = %q, %q", tr.ToggleID, tr.MenuID)
	}

	want := [][]string{
		{"menuOpened"},
		{"focusMoved(0)"},
		{"focusMoved(1)"},
		{"focusMoved(3)"},
		{"menuClosed", "focusAllowedToProgress"},
	}
	if len(tr.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(tr.Entries), len(want))
	}
	for i, w := range want {
		if got := effectNames(tr.Entries[i]); !reflect.DeepEqual(got, w) {
			t.Errorf("step %d effects = %v, want %v", i+1, got, w)
		}
	}

	if final := tr.Final(); final.Open || final.HasFocus() {
		t.Errorf("final state = %v, want closed without focus", final)
	}
}

func TestRunKeyboardOpen(t *testing.T) {
	tr := run(t, menu(t, "actions"), Options{}, "key down", "key escape")

	if got := effectNames(tr.Entries[0]); !reflect.DeepEqual(got, []string{"menuOpened", "focusMoved(0)"}) {
		t.Errorf("open effects = %v", got)
	}
	if got := effectNames(tr.Entries[1]); !reflect.DeepEqual(got, []string{"menuClosed", "focusReturnedToToggle"}) {
		t.Errorf("escape effects = %v", got)
	}
}

func TestRunSelect(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		menu          string
		query         string
		wantKey       string
		wantPrevented bool
		wantEffects   []string
	}{
		{"exact key", "actions", "another", "another", false, []string{"menuClosed", "focusReturnedToToggle"}},
		{"fuzzy label", "actions", "separ", "separated", false, []string{"menuClosed", "focusReturnedToToggle"}},
		{"configured prevent", "sort", "size", "size", true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tr := run(t, menu(t, tt.menu), Options{Recorder: rec, Now: func() time.Time { return now }},
				"toggle", "select "+tt.query)

			last := tr.Entries[1]
			if last.Selected != tt.wantKey || last.Prevented != tt.wantPrevented {
				t.Errorf("selected %q prevented=%v, want %q prevented=%v", last.Selected, last.Prevented, tt.wantKey, tt.wantPrevented)
			}
			if got := effectNames(last); !reflect.DeepEqual(got, tt.wantEffects) {
				t.Errorf("effects = %v, want %v", got, tt.wantEffects)
			}
			if last.State.Open != tt.wantPrevented {
				t.Errorf("open = %v after select", last.State.Open)
			}

			want := []history.Attempt{{MenuID: tr.MenuID, ItemKey: tt.wantKey, Prevented: tt.wantPrevented, At: now}}
			if !reflect.DeepEqual(rec.attempts, want) {
				t.Errorf("recorded %+v, want %+v", rec.attempts, want)
			}
		})
	}
}

func TestRunExtraHandlersAllRun(t *testing.T) {
	var seen []string
	opts := Options{Handlers: []selection.Handler{
		func(ev *selection.Event) { seen = append(seen, "a:"+ev.ItemKey()) },
		func(ev *selection.Event) { seen = append(seen, "b:"+ev.ItemKey()) },
	}}

	tr := run(t, menu(t, "sort"), opts, "toggle", "select size", "select name")

	if !tr.Entries[1].Prevented || tr.Entries[2].Prevented {
		t.Errorf("prevented = %v, %v; want true, false", tr.Entries[1].Prevented, tr.Entries[2].Prevented)
	}
	want := []string{"a:size", "b:size", "a:name", "b:name"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("handlers saw %v, want %v", seen, want)
	}
}

func TestRunItemsClearsStaleFocus(t *testing.T) {
	tr := run(t, menu(t, "actions"), Options{}, "toggle", "key up", "items 2", "key down")

	if tr.Entries[1].State.Focused != 3 {
		t.Fatalf("focused = %d after up, want 3", tr.Entries[1].State.Focused)
	}
	if st := tr.Entries[2].State; st.ItemCount != 2 || st.HasFocus() {
		t.Errorf("after items 2: %v", st)
	}
	// no focus, so the press originates at the toggle and lands on item 0
	if got := effectNames(tr.Entries[3]); !reflect.DeepEqual(got, []string{"focusMoved(0)"}) {
		t.Errorf("effects = %v", got)
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("no match", func(t *testing.T) {
		tr, err := Run(context.Background(), menu(t, "actions"), steps(t, "toggle", "select zzz"), Options{})
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("error = %v, want ErrNoMatch", err)
		}
		if len(tr.Entries) != 1 {
			t.Errorf("got %d entries before the failure, want 1", len(tr.Entries))
		}
	})

	t.Run("recorder failure", func(t *testing.T) {
		boom := errors.New("disk full")
		_, err := Run(context.Background(), menu(t, "actions"), steps(t, "select action"), Options{Recorder: &recorder{err: boom}})
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want %v", err, boom)
		}
	})

	t.Run("id failure", func(t *testing.T) {
		ids := ident.ProviderFunc(func() (string, error) { return "", errors.New("no entropy") })
		if _, err := Run(context.Background(), menu(t, "actions"), nil, Options{IDs: ids}); err == nil {
			t.Error("expected id error")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, menu(t, "actions"), steps(t, "toggle"), Options{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestTranscriptRendering(t *testing.T) {
	tr := run(t, menu(t, "sort"), Options{}, "toggle", "key down", "select size")

	t.Run("text", func(t *testing.T) {
		text := tr.Text()
		for _, want := range []string{"menu sort (toggle t-1, menu t-1-menu)", "focusMoved(0)", "select=size (prevented)", "open=true items=3 focused=0"} {
			if !strings.Contains(text, want) {
				t.Errorf("text missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("markdown", func(t *testing.T) {
		md := tr.Markdown()
		for _, want := range []string{"## sort", "| 1 | `toggle` | `menuOpened` | true | none |", "| 2 | `key down` | `focusMoved(0)` | true | 0 |"} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q:\n%s", want, md)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		data, err := tr.JSON()
		if err != nil {
			t.Fatalf("JSON failed: %v", err)
		}
		var decoded struct {
			MenuID  string `json:"menu_id"`
			Entries []struct {
				Effects   []string `json:"effects"`
				Focused   *int     `json:"focused"`
				Prevented bool     `json:"prevented"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded.MenuID != "t-1-menu" || len(decoded.Entries) != 3 {
			t.Fatalf("decoded %+v", decoded)
		}
		if decoded.Entries[0].Focused != nil {
			t.Error("unfocused entry should encode focused as null")
		}
		if f := decoded.Entries[1].Focused; f == nil || *f != 0 {
			t.Errorf("focused = %v, want 0", f)
		}
		if !decoded.Entries[2].Prevented {
			t.Error("select size should be prevented")
		}
	})
}

func TestFinalEmpty(t *testing.T) {
	if got := (Transcript{}).Final(); got != (disclosure.State{Focused: disclosure.NoFocus}) {
		t.Errorf("Final() = %v", got)
	}
}
