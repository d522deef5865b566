package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/dropdown/internal/disclosure"
	"github.com/marcus/dropdown/internal/suggest"
)

// ErrUnknownStep is returned for a step whose command is not recognized.
var ErrUnknownStep = errors.New("unknown step")

// StepKind identifies the controller operation a step drives.
type StepKind int

const (
	StepToggle StepKind = iota
	StepKey
	StepSelect
	StepItems
	StepClose
)

func (k StepKind) String() string {
	switch k {
	case StepToggle:
		return "toggle"
	case StepKey:
		return "key"
	case StepSelect:
		return "select"
	case StepItems:
		return "items"
	case StepClose:
		return "close"
	default:
		return "unknown"
	}
}

// Step is one parsed replay line.
//
//	toggle
//	key <down|up|escape|tab|other> [toggle | item <n>]
//	select <item key or fuzzy label query>
//	items <n>
//	close
//
// A key step without an explicit origin is sent from wherever focus
// currently is (ContextSet is false).
type Step struct {
	Kind       StepKind
	Key        disclosure.Key
	Context    disclosure.Context
	ContextSet bool
	Query      string
	Count      int
	Line       string
}

// ParseStep parses a single replay line.
func ParseStep(line string) (Step, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Step{}, fmt.Errorf("%w: empty line", ErrUnknownStep)
	}
	step := Step{Line: line}

	switch strings.ToLower(fields[0]) {
	case "toggle":
		step.Kind = StepToggle
		return step, expectArgs(fields, 1)

	case "close":
		step.Kind = StepClose
		return step, expectArgs(fields, 1)

	case "key":
		step.Kind = StepKey
		if len(fields) < 2 {
			return step, fmt.Errorf("key: missing key token")
		}
		key, err := disclosure.ParseKey(fields[1])
		if err != nil {
			return step, fmt.Errorf("key: %w", err)
		}
		step.Key = key
		return parseOrigin(step, fields[2:])

	case "select":
		step.Kind = StepSelect
		step.Query = strings.TrimSpace(strings.Join(fields[1:], " "))
		if step.Query == "" {
			return step, fmt.Errorf("select: missing item")
		}
		return step, nil

	case "items":
		step.Kind = StepItems
		if err := expectArgs(fields, 2); err != nil {
			return step, err
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return step, fmt.Errorf("items: %w", err)
		}
		if n < 0 {
			return step, fmt.Errorf("items: count must not be negative: %d", n)
		}
		step.Count = n
		return step, nil
	}

	if hint := suggest.Hint(suggest.Closest(strings.ToLower(fields[0]), stepNames)); hint != "" {
		return step, fmt.Errorf("%w: %q, %s", ErrUnknownStep, fields[0], hint)
	}
	return step, fmt.Errorf("%w: %q", ErrUnknownStep, fields[0])
}

var stepNames = []string{"toggle", "key", "select", "items", "close"}

// ParseSteps parses every line, stopping at the first error.
func ParseSteps(lines []string) ([]Step, error) {
	steps := make([]Step, 0, len(lines))
	for i, line := range lines {
		step, err := ParseStep(line)
		if err != nil {
			return nil, fmt.Errorf("step %d (%q): %w", i+1, line, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseOrigin(step Step, rest []string) (Step, error) {
	switch {
	case len(rest) == 0:
		return step, nil
	case len(rest) == 1 && strings.EqualFold(rest[0], "toggle"):
		step.Context = disclosure.ToggleContext()
		step.ContextSet = true
		return step, nil
	case len(rest) == 2 && strings.EqualFold(rest[0], "item"):
		i, err := strconv.Atoi(rest[1])
		if err != nil {
			return step, fmt.Errorf("key: item index: %w", err)
		}
		ctx, err := disclosure.NewItemContext(i)
		if err != nil {
			return step, fmt.Errorf("key: %w", err)
		}
		step.Context = ctx
		step.ContextSet = true
		return step, nil
	}
	return step, fmt.Errorf("key: unexpected origin %q", strings.Join(rest, " "))
}

func expectArgs(fields []string, n int) error {
	if len(fields) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", fields[0], n-1, len(fields)-1)
	}
	return nil
}
