package format

import (
	"fmt"
	"io"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/ui"
)

// Tree renders the parent/child hierarchy below node with ASCII connectors.
func Tree(w io.Writer, node *graph.TreeNode) {
	fmt.Fprintln(w, treeLabel(node))
	for i, child := range node.Children {
		treeNode(w, child, "", i == len(node.Children)-1)
	}
}

func treeNode(w io.Writer, node *graph.TreeNode, prefix string, isLast bool) {
	connector, next := "|- ", "|  "
	if isLast {
		connector, next = "`- ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, treeLabel(node))
	for i, child := range node.Children {
		treeNode(w, child, prefix+next, i == len(node.Children)-1)
	}
}

func treeLabel(node *graph.TreeNode) string {
	b := node.Bead
	return fmt.Sprintf("%s %s %s (%s)", ui.RenderStatusIcon(string(b.Status)), b.ID, truncate(b.Title), b.Priority)
}

// ProgressLine summarises a parent's descendants.
func ProgressLine(p *graph.Progress) string {
	if p.Total == 0 {
		return "No children."
	}
	pct := p.Closed * 100 / p.Total
	return fmt.Sprintf("Progress: %d/%d closed (%d%%) | %d in progress | %d open | %d blocked",
		p.Closed, p.Total, pct, p.InProgress, p.Open, p.Blocked)
}
