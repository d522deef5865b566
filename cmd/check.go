package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/marcus/dropdown/internal/config"
	"github.com/marcus/dropdown/internal/output"
)

var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   "Validate the configuration and list its menus",
	GroupID: "menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fail(err, "invalid configuration: %v", err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(cfg)
		}

		fmt.Printf("%d menu(s), history %s\n", len(cfg.Menus), onOff(cfg.History))
		fmt.Println(output.RenderTree(output.TreeNode{Children: menuTree(cfg)}, output.TreeRenderOptions{
			ShowIDs:   true,
			ShowMarks: true,
		}))
		output.Success("configuration is valid")
		return nil
	},
}

// menuTree lists each menu with its items; prevented items are marked.
func menuTree(cfg *config.Config) []output.TreeNode {
	nodes := make([]output.TreeNode, 0, len(cfg.Menus))
	for _, m := range cfg.Menus {
		node := output.TreeNode{ID: m.Name, Title: m.Toggle}
		for _, it := range m.Items {
			child := output.TreeNode{ID: it.Key, Title: it.Label}
			if slices.Contains(m.Prevent, it.Key) {
				child.Mark = output.MarkPrevented
			}
			node.Children = append(node.Children, child)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print the loaded configuration as JSON")
}
