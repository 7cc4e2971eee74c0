package graph

import "github.com/RamXX/beads/internal/model"

// TreeNode is a bead and its children in the parent/child hierarchy.
type TreeNode struct {
	Bead     *model.Bead `json:"bead"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Tree builds the hierarchy rooted at id by following children edges.
// Children that do not exist are skipped; each bead appears at most once.
func (g *Graph) Tree(id string) *TreeNode {
	root, ok := g.nodes[id]
	if !ok {
		return nil
	}
	visited := map[string]bool{id: true}
	node := &TreeNode{Bead: root}
	g.buildChildren(node, visited)
	return node
}

func (g *Graph) buildChildren(parent *TreeNode, visited map[string]bool) {
	for _, childID := range parent.Bead.Relationships.Children {
		child, ok := g.nodes[childID]
		if !ok || visited[childID] {
			continue
		}
		visited[childID] = true
		node := &TreeNode{Bead: child}
		g.buildChildren(node, visited)
		parent.Children = append(parent.Children, node)
	}
}

// Descendants returns every bead below id, depth first, excluding id itself.
func (g *Graph) Descendants(id string) []*model.Bead {
	tree := g.Tree(id)
	if tree == nil {
		return nil
	}
	var out []*model.Bead
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		for _, c := range n.Children {
			out = append(out, c.Bead)
			walk(c)
		}
	}
	walk(tree)
	return out
}

// Progress summarises the children of a parent bead.
type Progress struct {
	Parent     *model.Bead `json:"-"`
	Total      int         `json:"total"`
	Open       int         `json:"open"`
	InProgress int         `json:"in_progress"`
	Closed     int         `json:"closed"`
	Blocked    int         `json:"blocked"`
}

// ChildProgress counts every descendant of id by status. Blocked counts the
// derived predicate, so a bead may be counted as both open and blocked.
func (g *Graph) ChildProgress(id string) *Progress {
	root, ok := g.nodes[id]
	if !ok {
		return nil
	}
	p := &Progress{Parent: root}
	for _, b := range g.Descendants(id) {
		p.Total++
		switch b.Status {
		case model.StatusOpen:
			p.Open++
		case model.StatusInProgress:
			p.InProgress++
		case model.StatusClosed:
			p.Closed++
		}
		if g.IsBlocked(b) {
			p.Blocked++
		}
	}
	return p
}
