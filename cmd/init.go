package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write the default configuration to .dropdown/config.json",
	GroupID: "menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		path := config.Path(dir)

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			err := errors.New("config already exists")
			return fail(err, "%s already exists (use --force to overwrite)", path)
		}

		cfg := config.Default()
		cfg.History, _ = cmd.Flags().GetBool("history")
		if err := config.Save(dir, cfg); err != nil {
			return fail(err, "failed to write config: %v", err)
		}

		output.Success("wrote %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
	initCmd.Flags().Bool("history", true, "Record selection attempts")
}
