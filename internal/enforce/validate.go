// Package enforce checks the structural invariants of a bead collection:
// unique ids, valid records, no self links, and an inverse for every edge
// except discovered-from.
package enforce

import (
	"fmt"
	"slices"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
)

// Severity separates broken invariants from tolerated oddities.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind labels a class of problem.
type Kind string

const (
	KindDuplicate Kind = "DUP"
	KindValid     Kind = "VALID"
	KindSelf      Kind = "SELF"
	KindSync      Kind = "SYNC"
	KindDangling  Kind = "DANGLING"
	KindCycle     Kind = "CYCLE"
)

// Problem is one finding.
type Problem struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	ID       string   `json:"id"`
	Message  string   `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s: %s", p.Kind, p.ID, p.Message)
}

// ValidateBead runs record validation on a bead.
func ValidateBead(b *model.Bead) error {
	return b.Validate()
}

// ValidateDeps rejects edges that point back at the bead itself.
func ValidateDeps(b *model.Bead) error {
	for _, rel := range model.Relations {
		if b.Relationships.Has(rel, b.ID) {
			return fmt.Errorf("%w: bead %s cannot be %s itself", model.ErrInvalid, b.ID, rel)
		}
	}
	return nil
}

// Check reports every problem found in beads, in collection order.
// Dangling references are warnings: blocked-by in particular may name a bead
// that never existed.
func Check(beads []*model.Bead) []Problem {
	var problems []Problem
	add := func(kind Kind, sev Severity, id, format string, args ...any) {
		problems = append(problems, Problem{Kind: kind, Severity: sev, ID: id, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(beads))
	for _, b := range beads {
		if seen[b.ID] {
			add(KindDuplicate, SeverityError, b.ID, "id appears more than once")
		}
		seen[b.ID] = true
		if err := ValidateBead(b); err != nil {
			add(KindValid, SeverityError, b.ID, "%v", err)
		}
		if err := ValidateDeps(b); err != nil {
			add(KindSelf, SeverityError, b.ID, "%v", err)
		}
	}

	g := graph.Build(beads)
	for _, b := range beads {
		for _, e := range edges(b) {
			target, ok := g.Get(e.target)
			if !ok {
				add(KindDangling, SeverityWarning, b.ID, "%s %s, which does not exist", e.rel, e.target)
				continue
			}
			if e.target == b.ID {
				continue
			}
			inv := inverseKind(e.rel)
			if inv == "" {
				continue
			}
			if !target.Relationships.Has(inv, b.ID) {
				add(KindSync, SeverityError, b.ID, "%s %s, but %s does not list %s in %s",
					e.rel, e.target, e.target, b.ID, inv)
			}
		}
	}

	for _, cycle := range g.DetectCycles() {
		slices.Reverse(cycle)
		add(KindCycle, SeverityError, cycle[0], "blocking cycle %v", cycle)
	}
	return problems
}

// RepairInverses adds every missing inverse edge whose target exists and
// returns how many were added.
func RepairInverses(beads []*model.Bead) int {
	g := graph.Build(beads)
	fixed := 0
	for _, b := range beads {
		for _, e := range edges(b) {
			target, ok := g.Get(e.target)
			if !ok || e.target == b.ID {
				continue
			}
			inv := inverseKind(e.rel)
			if inv == "" {
				continue
			}
			// A child already claimed by another parent is left alone.
			if inv == model.RelParent && target.Relationships.Parent != "" {
				continue
			}
			if target.Relationships.Add(inv, b.ID) {
				fixed++
			}
		}
	}
	return fixed
}

// HasErrors reports whether any problem is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

type edge struct {
	rel    model.Relation
	target string
}

func edges(b *model.Bead) []edge {
	var out []edge
	for _, rel := range model.Relations {
		for _, id := range b.Relationships.IDs(rel) {
			out = append(out, edge{rel: rel, target: id})
		}
	}
	return out
}

// inverseKind is the relation the target must hold for an edge stored as
// rel. Stored children pair with a single parent.
func inverseKind(rel model.Relation) model.Relation {
	inv, ok := rel.Inverse()
	if !ok {
		return ""
	}
	return inv
}
