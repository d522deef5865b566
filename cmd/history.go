package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/dropdown/internal/history"
	"github.com/marcus/dropdown/internal/output"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show recent selection attempts",
	Long:    `Lists selection attempts recorded by 'dropdown demo' and 'dropdown replay --record', newest first.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := history.Open(getBaseDir())
		if err != nil {
			return fail(err, "failed to open history: %v", err)
		}
		defer store.Close()

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			if err := store.Clear(ctx); err != nil {
				return fail(err, "failed to clear history: %v", err)
			}
			fmt.Println("Cleared selection history")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		menu, _ := cmd.Flags().GetString("menu")

		var attempts []history.Attempt
		if menu != "" {
			attempts, err = store.ForMenu(ctx, menu, limit)
		} else {
			attempts, err = store.Recent(ctx, limit)
		}
		if err != nil {
			return fail(err, "failed to read history: %v", err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			if attempts == nil {
				attempts = []history.Attempt{}
			}
			return output.JSON(attempts)
		}

		if len(attempts) == 0 {
			fmt.Println("No selection attempts recorded")
			return nil
		}

		stats, err := store.Stats(ctx)
		if err != nil {
			return fail(err, "failed to read history: %v", err)
		}
		fmt.Printf("Selection attempts (%d of %d, %d prevented):\n\n", len(attempts), stats.Total, stats.Prevented)
		for _, a := range attempts {
			fmt.Println(formatAttempt(a))
		}
		return nil
	},
}

func formatAttempt(a history.Attempt) string {
	outcome := "selected"
	if a.Prevented {
		outcome = "prevented"
	}
	ts := a.At.Local().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s  %-9s  %s  %s", ts, outcome, a.MenuID, a.ItemKey)
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum attempts to show (0 for all)")
	historyCmd.Flags().String("menu", "", "Only show attempts for this menu id")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded attempts")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}
