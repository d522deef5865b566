package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/output"
	"github.com/marcus/dropdown/internal/suggest"
	"github.com/marcus/dropdown/internal/workdir"
)

var (
	version  string
	baseDir  string
	baseFrom workdir.Source

	configPath string
	logFile    string
	level      = logLevel{level: slog.LevelWarn}

	logCloser io.Closer
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dropdown",
	Short: "Disclosure dropdown menus for the terminal",
	Long: `dropdown - a keyboard- and mouse-driven disclosure menu for terminal programs.

Menus are defined in .dropdown/config.json. Try them interactively with 'dropdown demo',
or drive them from scripts with 'dropdown replay'.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// reportedError marks an error that a command has already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// fail prints a formatted error and returns err marked as reported.
func fail(err error, format string, args ...any) error {
	output.Error(format, args...)
	return reportedError{err}
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		logCloser.Close()
	}
	if err == nil {
		return
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		output.Error("%v", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			if name := firstNonFlagArg(os.Args[1:]); name != "" {
				fmt.Fprintf(os.Stderr, "Run 'dropdown --help' for usage (%q is not a command).\n", name)
			}
		}
	}
	os.Exit(1)
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.AddGroup(
		&cobra.Group{ID: "menus", Title: "Menus:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	rootCmd.SetFlagErrorFunc(flagError)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default .dropdown/config.json)")
	flags.Var(&level, "log-level", "log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

func initBaseDir() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	root := workdir.Resolve(wd)
	baseDir, baseFrom = root.Dir, root.Source
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fail(err, "cannot open log file: %v", err)
		}
		logCloser = f
		w = f
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level.level,
	})))
	slog.Debug("logging configured", "level", level.String(), "command", cmd.Name(),
		"base_dir", baseDir, "base_from", baseFrom.String())
	return nil
}

// loadConfig reads, in order of priority, --config, $DROPDOWN_CONFIG or
// .dropdown/config.json under the base directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	if v := os.Getenv(workdir.ConfigEnv); v != "" {
		return config.LoadFile(v)
	}
	return config.Load(getBaseDir())
}

// openHistory opens the history store when the config enables it. A nil
// store with a nil error means history is off.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History {
		return nil, nil
	}
	return history.Open(getBaseDir())
}

// flagError adds close matches to unknown-flag errors.
func flagError(cmd *cobra.Command, err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown flag: ") {
		return err
	}
	unknown := strings.TrimPrefix(msg, "unknown flag: ")

	var names []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		names = append(names, "--"+f.Name)
	})
	if hint := suggest.Hint(suggest.Flag(unknown, names)); hint != "" {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
