package graph

import (
	"slices"

	"github.com/RamXX/beads/internal/idgen"
	"github.com/RamXX/beads/internal/model"
)

// Graph is a read-only view over a bead collection. It is rebuilt for every
// query and never caches derived state on the beads themselves.
type Graph struct {
	order []*model.Bead
	nodes map[string]*model.Bead
}

// Build indexes beads by ID, keeping collection order for iteration.
func Build(beads []*model.Bead) *Graph {
	g := &Graph{
		order: beads,
		nodes: make(map[string]*model.Bead, len(beads)),
	}
	for _, b := range beads {
		if _, dup := g.nodes[b.ID]; !dup {
			g.nodes[b.ID] = b
		}
	}
	return g
}

// Find returns the first bead, in collection order, whose ID equals query or
// ends with it. Short queries are ambiguous; the earliest bead wins.
func Find(beads []*model.Bead, query string) *model.Bead {
	for _, b := range beads {
		if idgen.MatchSuffix(b.ID, query) {
			return b
		}
	}
	return nil
}

// Get returns the bead with exactly this ID.
func (g *Graph) Get(id string) (*model.Bead, bool) {
	b, ok := g.nodes[id]
	return b, ok
}

// Resolve looks up a reference the same way user-supplied IDs are looked up.
func (g *Graph) Resolve(ref string) *model.Bead {
	return Find(g.order, ref)
}

// Beads returns the collection in its original order.
func (g *Graph) Beads() []*model.Bead { return g.order }

// IsBlocked reports whether any blocked-by reference resolves to a bead that
// is not closed. Dangling references do not block.
func (g *Graph) IsBlocked(b *model.Bead) bool {
	for _, ref := range b.Relationships.BlockedBy {
		if dep := g.Resolve(ref); dep != nil && !dep.IsClosed() {
			return true
		}
	}
	return false
}

// Ready returns open beads that are not derived-blocked.
func (g *Graph) Ready() []*model.Bead {
	var ready []*model.Bead
	for _, b := range g.order {
		if b.Status == model.StatusOpen && !g.IsBlocked(b) {
			ready = append(ready, b)
		}
	}
	return ready
}

// Blocked returns derived-blocked beads regardless of stored status.
func (g *Graph) Blocked() []*model.Bead {
	var blocked []*model.Bead
	for _, b := range g.order {
		if g.IsBlocked(b) {
			blocked = append(blocked, b)
		}
	}
	return blocked
}

// BlockersOf returns the beads still blocking the given bead.
func (g *Graph) BlockersOf(id string) []*model.Bead {
	b, ok := g.nodes[id]
	if !ok {
		return nil
	}
	var blockers []*model.Bead
	for _, ref := range b.Relationships.BlockedBy {
		if dep := g.Resolve(ref); dep != nil && !dep.IsClosed() {
			blockers = append(blockers, dep)
		}
	}
	return blockers
}

// Unblocked scans every bead that lists one of closedIDs in blocked-by and
// returns those no longer derived-blocked. The closed beads themselves are
// skipped.
func (g *Graph) Unblocked(closedIDs ...string) []*model.Bead {
	var out []*model.Bead
	for _, b := range g.order {
		if slices.Contains(closedIDs, b.ID) {
			continue
		}
		referenced := false
		for _, id := range closedIDs {
			if b.Relationships.Has(model.RelBlockedBy, id) {
				referenced = true
				break
			}
		}
		if referenced && !g.IsBlocked(b) {
			out = append(out, b)
		}
	}
	return out
}

// DetectCycles finds cycles over blocking edges using DFS. An edge A -> B
// exists when A lists B in blocks or B lists A in blocked-by.
func (g *Graph) DetectCycles() [][]string {
	forward := make(map[string][]string)
	addEdge := func(from, to string) {
		if _, ok := g.nodes[to]; !ok || slices.Contains(forward[from], to) {
			return
		}
		forward[from] = append(forward[from], to)
	}
	for _, b := range g.order {
		for _, to := range b.Relationships.Blocks {
			addEdge(b.ID, to)
		}
		for _, from := range b.Relationships.BlockedBy {
			if _, ok := g.nodes[from]; ok {
				addEdge(from, b.ID)
			}
		}
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var cycles [][]string
	var path []string

	var dfs func(id string)
	dfs = func(id string) {
		if onStack[id] {
			cycle := []string{id}
			for i := len(path) - 1; i >= 0; i-- {
				cycle = append(cycle, path[i])
				if path[i] == id {
					break
				}
			}
			cycles = append(cycles, cycle)
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, next := range forward[id] {
			dfs(next)
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	for _, b := range g.order {
		dfs(b.ID)
	}
	return cycles
}

// Stats holds aggregate counts. Blocked counts the stored label;
// DerivedBlocked counts the graph predicate.
type Stats struct {
	Total          int                    `json:"total"`
	Open           int                    `json:"open"`
	InProgress     int                    `json:"in_progress"`
	Blocked        int                    `json:"blocked"`
	Closed         int                    `json:"closed"`
	DerivedBlocked int                    `json:"derived_blocked"`
	Ready          int                    `json:"ready"`
	ByType         map[model.BeadType]int `json:"by_type"`
	ByPriority     map[model.Priority]int `json:"by_priority"`
}

func (g *Graph) Stats() Stats {
	s := Stats{
		ByType:     make(map[model.BeadType]int),
		ByPriority: make(map[model.Priority]int),
	}
	for _, b := range g.order {
		s.Total++
		switch b.Status {
		case model.StatusOpen:
			s.Open++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusBlocked:
			s.Blocked++
		case model.StatusClosed:
			s.Closed++
		}
		blocked := g.IsBlocked(b)
		if blocked {
			s.DerivedBlocked++
		}
		if b.Status == model.StatusOpen && !blocked {
			s.Ready++
		}
		s.ByType[b.Type]++
		s.ByPriority[b.Priority]++
	}
	return s
}
