package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/selection"
	"github.com/marcus/dropdown/pkg/dropdown"
)

const (
	demoPadX = 2
	demoPadY = 1
	// rows above the dropdown inside the padding: title and a blank line
	demoHeaderRows = 2
)

var demoCmd = &cobra.Command{
	Use:     "demo",
	Short:   "Try a configured menu interactively",
	GroupID: "menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fail(err, "invalid configuration: %v", err)
		}

		menuName, _ := cmd.Flags().GetString("menu")
		menu, err := chooseMenu(cfg, menuName)
		if err != nil {
			return fail(err, "%v", err)
		}

		store, err := openHistory(cfg)
		if err != nil {
			return fail(err, "failed to open history: %v", err)
		}
		if store != nil {
			defer store.Close()
		}

		maxVisible, _ := cmd.Flags().GetInt("max-visible")
		width, _ := cmd.Flags().GetInt("width")

		m, err := newDemoModel(cfg, menu, store, maxVisible, width)
		if err != nil {
			return fail(err, "failed to build menu: %v", err)
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
		final, err := p.Run()
		if err != nil {
			return fail(err, "demo failed: %v", err)
		}
		if dm, ok := final.(demoModel); ok && dm.last != "" {
			fmt.Println(dm.last)
		}
		return nil
	},
}

// chooseMenu returns the named menu. Without a name it asks which one to
// use when several are configured and stdin is a terminal.
func chooseMenu(cfg *config.Config, name string) (config.Menu, error) {
	if name != "" || len(cfg.Menus) == 1 || !term.IsTerminal(int(os.Stdin.Fd())) {
		return pickMenuByName(cfg, name)
	}

	options := make([]huh.Option[string], len(cfg.Menus))
	for i, m := range cfg.Menus {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%d items)", m.Toggle, len(m.Items)), m.Name)
	}
	name = cfg.Menus[0].Name
	err := huh.NewSelect[string]().
		Title("Menu").
		Options(options...).
		Value(&name).
		Run()
	if err != nil {
		return config.Menu{}, err
	}
	return pickMenuByName(cfg, name)
}

var (
	demoTitle  = lipgloss.NewStyle().Bold(true)
	demoButton = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238"))
	demoActive = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("255")).Background(dropdown.Primary)
	demoStatus = lipgloss.NewStyle().Foreground(dropdown.Muted)
)

// demoModel hosts one dropdown followed by a Done button, so tab can be seen
// moving focus out of the menu.
type demoModel struct {
	menu   config.Menu
	dd     dropdown.Model
	help   help.Model
	onDone bool
	status string
	last   string
}

func newDemoModel(cfg *config.Config, menu config.Menu, store *history.Store, maxVisible, width int) (demoModel, error) {
	items := make([]dropdown.Item, len(menu.Items))
	for i, it := range menu.Items {
		items[i] = dropdown.Item{Key: it.Key, Label: it.Label}
	}

	opts := []dropdown.Option{
		dropdown.WithIDProvider(cfg.IDProvider()),
		dropdown.WithLogger(slog.Default()),
		dropdown.WithMaxVisible(maxVisible),
		dropdown.WithWidth(width),
	}
	if len(menu.Prevent) > 0 {
		opts = append(opts, dropdown.WithHandlers(selection.PreventKeys(menu.Prevent...)))
	}
	if store != nil {
		opts = append(opts, dropdown.WithRecorder(store))
	}

	dd, err := dropdown.New(menu.Toggle, items, opts...)
	if err != nil {
		return demoModel{}, err
	}
	dd.SetOrigin(demoPadX, demoPadY+demoHeaderRows)

	h := help.New()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		h.Width = w
	}
	return demoModel{menu: menu, dd: dd, help: h, status: "enter or click to open"}, nil
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.dd.Expanded() {
				return m, tea.Quit
			}
		}
		if m.onDone {
			switch msg.String() {
			case "enter", " ":
				return m, tea.Quit
			case "tab", "shift+tab":
				m.onDone = false
				m.dd.Focus()
			}
			return m, nil
		}
		// a closed menu has nothing to dismiss, so tab simply moves on
		if msg.String() == "tab" && !m.dd.Expanded() {
			m.dd.Blur()
			m.onDone = true
			return m, nil
		}

	case dropdown.SelectedMsg:
		m.last = fmt.Sprintf("selected %s from %s", msg.Key, m.menu.Name)
		m.status = m.last
		return m, nil

	case dropdown.PreventedMsg:
		m.status = fmt.Sprintf("%s is not available", msg.Key)
		return m, nil

	case dropdown.FocusNextMsg:
		m.onDone = true
		m.status = "focus moved past the menu"
		return m, nil

	case dropdown.RecordErrMsg:
		m.status = fmt.Sprintf("history: %v", msg.Err)
		return m, nil
	}

	var cmd tea.Cmd
	m.dd, cmd = m.dd.Update(msg)
	return m, cmd
}

func (m demoModel) View() string {
	var sb strings.Builder
	sb.WriteString(demoTitle.Render("dropdown demo: " + m.menu.Name))
	sb.WriteString("\n\n")
	sb.WriteString(m.dd.View())
	sb.WriteString("\n\n")

	done := demoButton.Render("Done")
	if m.onDone {
		done = demoActive.Render("Done")
	}
	sb.WriteString(done)
	sb.WriteString("\n\n")
	sb.WriteString(demoStatus.Render(m.status))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.dd.KeyMap()))

	return lipgloss.NewStyle().Padding(demoPadY, demoPadX).Render(sb.String())
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringP("menu", "m", "", "Menu to show (default: ask, or the first menu)")
	demoCmd.Flags().Int("max-visible", 6, "Items shown before the menu scrolls")
	demoCmd.Flags().Int("width", 0, "Fixed menu width (0 fits the longest label)")
}
