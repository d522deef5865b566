package output

import (
	"fmt"
	"strings"
)

// Mark is a trailing indicator on a tree line.
type Mark int

const (
	MarkNone Mark = iota
	MarkPrevented
	MarkDisabled
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Title    string
	Mark     Mark
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth  int  // 0 = unlimited
	ShowIDs   bool // prefix titles with "id:"
	ShowMarks bool
}

func markSuffix(m Mark) string {
	switch m {
	case MarkPrevented:
		return " \u2717" // ✗
	case MarkDisabled:
		return " \u2013" // –
	default:
		return ""
	}
}

// RenderTree renders the children of root. The root itself is not printed.
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	return strings.Join(renderTreeNodes(root.Children, opts, 0, ""), "\n")
}

// RenderTreeLines renders several roots and returns the individual lines.
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 "  // ├──
		childPrefix := prefix + "\u2502   " // │
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
			childPrefix = prefix + "    "
		}

		text := node.Title
		if opts.ShowIDs && node.ID != "" {
			text = fmt.Sprintf("%s: %s", node.ID, node.Title)
		}
		if opts.ShowMarks {
			text += markSuffix(node.Mark)
		}

		lines = append(lines, prefix+connector+text)
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}
	return lines
}
