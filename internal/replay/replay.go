// Package replay drives a disclosure controller headlessly from a list of
// parsed steps and records what happened at every step.
package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/disclosure"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/ident"
	"github.com/marcus/dropdown/internal/input"
	"github.com/marcus/dropdown/internal/selection"
)

// ErrNoMatch is returned when a select step matches no item.
var ErrNoMatch = errors.New("no item matches")

// Options configures a replay run.
type Options struct {
	// IDs generates the toggle id. Defaults to ident.Random.
	IDs ident.Provider
	// Handlers run after the menu's configured prevent handler.
	Handlers []selection.Handler
	// Recorder, when set, receives every selection attempt.
	Recorder history.Recorder
	Logger   *slog.Logger
	// Now stamps recorded attempts. Defaults to time.Now.
	Now func() time.Time
}

// Entry is the outcome of one step.
type Entry struct {
	Step      int
	Line      string
	Effects   []disclosure.Effect
	State     disclosure.State
	Selected  string
	Prevented bool
}

// Transcript is the record of a full run.
type Transcript struct {
	Menu     string
	ToggleID string
	MenuID   string
	Entries  []Entry
}

// Final returns the state after the last step.
func (t Transcript) Final() disclosure.State {
	if len(t.Entries) == 0 {
		return disclosure.State{Focused: disclosure.NoFocus}
	}
	return t.Entries[len(t.Entries)-1].State
}

// Run replays steps against a fresh controller for menu. It stops at the
// first step that fails or when ctx is canceled, returning the transcript
// so far together with the error.
func Run(ctx context.Context, menu config.Menu, steps []input.Step, opts Options) (Transcript, error) {
	if opts.IDs == nil {
		opts.IDs = ident.Random{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	toggleID, err := opts.IDs.NewID()
	if err != nil {
		return Transcript{}, fmt.Errorf("toggle id: %w", err)
	}
	tr := Transcript{Menu: menu.Name, ToggleID: toggleID, MenuID: ident.MenuID(toggleID)}

	c := disclosure.New(
		disclosure.WithItemCount(len(menu.Items)),
		disclosure.WithLogger(opts.Logger.With("menu", tr.MenuID)),
	)
	if len(menu.Prevent) > 0 {
		c.OnSelect(selection.PreventKeys(menu.Prevent...))
	}
	for _, h := range opts.Handlers {
		c.OnSelect(h)
	}

	r := runner{menu: menu, c: c, opts: opts, menuID: tr.MenuID}
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		entry, err := r.apply(ctx, step)
		if err != nil {
			return tr, fmt.Errorf("step %d (%s): %w", i+1, step.Line, err)
		}
		entry.Step = i + 1
		entry.Line = step.Line
		entry.State = c.State()
		tr.Entries = append(tr.Entries, entry)
	}
	return tr, nil
}

type runner struct {
	menu   config.Menu
	c      *disclosure.Controller
	opts   Options
	menuID string
}

func (r *runner) apply(ctx context.Context, step input.Step) (Entry, error) {
	switch step.Kind {
	case input.StepToggle:
		return Entry{Effects: r.c.ActivateToggle()}, nil

	case input.StepClose:
		return Entry{Effects: r.c.Close()}, nil

	case input.StepItems:
		r.c.SetItemCount(step.Count)
		return Entry{}, nil

	case input.StepKey:
		origin := step.Context
		if !step.ContextSet {
			origin = r.currentContext()
		}
		return Entry{Effects: r.c.OnKey(origin, step.Key)}, nil

	case input.StepSelect:
		key, err := r.resolve(step.Query)
		if err != nil {
			return Entry{}, err
		}
		prevented, effects := r.c.AttemptSelect(key)
		if r.opts.Recorder != nil {
			a := history.Attempt{MenuID: r.menuID, ItemKey: key, Prevented: prevented, At: r.opts.Now()}
			if _, err := r.opts.Recorder.Record(ctx, a); err != nil {
				return Entry{}, err
			}
		}
		return Entry{Effects: effects, Selected: key, Prevented: prevented}, nil
	}
	return Entry{}, fmt.Errorf("%w: %s", input.ErrUnknownStep, step.Kind)
}

// currentContext is the origin of a key press when the step names none:
// the focused item if there is one, otherwise the toggle.
func (r *runner) currentContext() disclosure.Context {
	if st := r.c.State(); st.HasFocus() {
		return disclosure.ItemContext(st.Focused)
	}
	return disclosure.ToggleContext()
}

// resolve maps a query to an item key: an exact key wins, otherwise the best
// fuzzy match over item labels.
func (r *runner) resolve(query string) (string, error) {
	labels := make([]string, len(r.menu.Items))
	for i, it := range r.menu.Items {
		if it.Key == query {
			return it.Key, nil
		}
		labels[i] = it.Label
	}

	matches := fuzzy.Find(query, labels)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	return r.menu.Items[matches[0].Index].Key, nil
}
