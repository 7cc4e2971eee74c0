package store

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
)

// FilterOptions controls which beads Filter returns.
type FilterOptions struct {
	Status  string // exact status; when empty closed beads are hidden unless All
	Agent   string
	Type    string
	Ready   bool // open and not blocked
	Blocked bool // derived-blocked, whatever the stored status
	All     bool
	Since   time.Time // updated at or after
	Sort    string    // "priority", "created", "updated", "id"; default keeps collection order
	Reverse bool
	Limit   int
}

// Filter selects beads from the collection. Blocking is evaluated against
// the whole collection, not just the beads that pass the other filters.
func Filter(beads []*model.Bead, opts FilterOptions) ([]*model.Bead, error) {
	var status model.Status
	if opts.Status != "" {
		st, err := model.ParseStatus(opts.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	var btype model.BeadType
	if opts.Type != "" {
		t, err := model.ParseBeadType(opts.Type)
		if err != nil {
			return nil, err
		}
		btype = t
	}

	g := graph.Build(beads)
	out := []*model.Bead{}
	for _, b := range beads {
		switch {
		case status != "" && b.Status != status:
			continue
		case status == "" && !opts.All && b.IsClosed():
			continue
		case opts.Agent != "" && b.Agent != opts.Agent:
			continue
		case btype != "" && b.Type != btype:
			continue
		case opts.Ready && (b.Status != model.StatusOpen || g.IsBlocked(b)):
			continue
		case opts.Blocked && !g.IsBlocked(b):
			continue
		case !opts.Since.IsZero() && b.Updated.Before(opts.Since):
			continue
		}
		out = append(out, b)
	}

	if err := sortBeads(out, opts.Sort, opts.Reverse); err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func sortBeads(beads []*model.Bead, sortBy string, reverse bool) error {
	var compare func(a, b *model.Bead) int
	switch strings.ToLower(sortBy) {
	case "":
	case "priority":
		compare = func(a, b *model.Bead) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }
	case "created":
		compare = func(a, b *model.Bead) int { return a.Created.Compare(b.Created.Time) }
	case "updated":
		compare = func(a, b *model.Bead) int { return b.Updated.Compare(a.Updated.Time) }
	case "id":
		compare = func(a, b *model.Bead) int { return strings.Compare(a.ID, b.ID) }
	default:
		return fmt.Errorf("%w: sort %q: must be one of priority, created, updated, id", model.ErrInvalid, sortBy)
	}
	if compare != nil {
		slices.SortStableFunc(beads, compare)
	}
	if reverse {
		slices.Reverse(beads)
	}
	return nil
}
