package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/input"
	"github.com/marcus/dropdown/internal/replay"
	"github.com/marcus/dropdown/internal/suggest"
)

const maxParallelReplays = 4

var replayCmd = &cobra.Command{
	Use:   "replay [script...]",
	Short: "Replay scripted input against a menu",
	Long: `Drives a menu headlessly and prints what happened at every step.

Each script holds one step per line ('#' starts a comment):

  toggle                       activate the toggle
  key down|up|escape|tab|other press a key where focus is
  key <key> toggle             press a key on the toggle
  key <key> item <n>           press a key on item n
  select <key or label>        attempt to select an item (labels match fuzzily)
  items <n>                    change the item count
  close                        dismiss the menu

Use '-' to read a script from stdin. Steps can also be given inline with
--step, which accepts @file and - like script arguments.`,
	GroupID: "menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fail(err, "invalid configuration: %v", err)
		}

		menuName, _ := cmd.Flags().GetString("menu")
		menu, err := pickMenuByName(cfg, menuName)
		if err != nil {
			return fail(err, "%v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "markdown" && format != "json" {
			err := fmt.Errorf("unknown format %q", format)
			return fail(err, "%v (want text, markdown or json)", err)
		}

		stepFlags, _ := cmd.Flags().GetStringArray("step")
		scripts, err := collectScripts(args, stepFlags)
		if err != nil {
			return fail(err, "%v", err)
		}
		if len(scripts) == 0 {
			err := fmt.Errorf("no script given")
			return fail(err, "no script given: pass a file, '-' or --step")
		}

		var recorder history.Recorder
		if record, _ := cmd.Flags().GetBool("record"); record {
			store, err := history.Open(getBaseDir())
			if err != nil {
				return fail(err, "failed to open history: %v", err)
			}
			defer store.Close()
			recorder = store
		}

		opts := replay.Options{
			IDs:      cfg.IDProvider(),
			Recorder: recorder,
			Logger:   slog.Default(),
		}
		transcripts, err := runScripts(cmd.Context(), menu, scripts, opts)
		if err != nil {
			return fail(err, "replay failed: %v", err)
		}

		return printTranscripts(transcripts, format)
	},
}

// script is one named list of steps.
type script struct {
	name  string
	lines []string
}

// collectScripts reads script files and inline steps. Inline steps form one
// extra script named "--step".
func collectScripts(args, stepFlags []string) ([]script, error) {
	var scripts []script
	stdinUsed := false
	for _, arg := range args {
		if arg == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("stdin given more than once")
			}
			stdinUsed = true
			scripts = append(scripts, script{name: "stdin", lines: input.ReadLinesFromReader(os.Stdin)})
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		scripts = append(scripts, script{name: arg, lines: input.ReadLinesFromReader(f)})
		f.Close()
	}

	if len(stepFlags) > 0 {
		lines, _ := input.ExpandFlagValues(stepFlags, stdinUsed)
		scripts = append(scripts, script{name: "--step", lines: lines})
	}
	return scripts, nil
}

// runScripts replays every script concurrently, each against its own
// controller, and returns the transcripts in script order.
func runScripts(ctx context.Context, menu config.Menu, scripts []script, opts replay.Options) ([]replay.Transcript, error) {
	parsed := make([][]input.Step, len(scripts))
	for i, s := range scripts {
		steps, err := input.ParseSteps(s.lines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		parsed[i] = steps
	}

	transcripts := make([]replay.Transcript, len(scripts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReplays)
	for i := range scripts {
		g.Go(func() error {
			tr, err := replay.Run(ctx, menu, parsed[i], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", scripts[i].name, err)
			}
			transcripts[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return transcripts, nil
}

func printTranscripts(transcripts []replay.Transcript, format string) error {
	switch format {
	case "json":
		for _, tr := range transcripts {
			data, err := tr.JSON()
			if err != nil {
				return fail(err, "encode transcript: %v", err)
			}
			fmt.Println(string(data))
		}
	case "markdown":
		for _, tr := range transcripts {
			fmt.Print(renderMarkdown(tr.Markdown()))
		}
	default:
		for i, tr := range transcripts {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(tr.Text())
		}
	}
	return nil
}

// renderMarkdown styles markdown for a terminal. Piped output stays raw.
func renderMarkdown(md string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return md
	}

	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Debug("replay: markdown renderer", "err", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Debug("replay: render markdown", "err", err)
		return md
	}
	return out
}

// pickMenuByName returns the named menu, or the first one when name is empty.
func pickMenuByName(cfg *config.Config, name string) (config.Menu, error) {
	if name == "" {
		return cfg.Menus[0], nil
	}
	m, ok := cfg.Find(name)
	if !ok {
		names := make([]string, len(cfg.Menus))
		for i, m := range cfg.Menus {
			names[i] = m.Name
		}
		if hint := suggest.Hint(suggest.Closest(name, names)); hint != "" {
			return config.Menu{}, fmt.Errorf("no menu named %q, %s", name, hint)
		}
		return config.Menu{}, fmt.Errorf("no menu named %q", name)
	}
	return m, nil
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("menu", "m", "", "Menu to replay against (default: first menu)")
	replayCmd.Flags().StringArrayP("step", "s", nil, "Inline step (repeatable; @file and - expand)")
	replayCmd.Flags().StringP("format", "f", "text", "Output format: text, markdown, json")
	replayCmd.Flags().Bool("record", false, "Record selection attempts to history")
}
