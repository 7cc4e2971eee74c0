package graph

import (
	"slices"

	"github.com/RamXX/beads/internal/model"
)

const (
	ReadyPreview   = 10
	BlockedPreview = 5
	RecentlyClosed = 5
)

// SessionContext is the read-only summary shown at the start of a work
// session.
type SessionContext struct {
	InProgress     []*model.Bead
	Ready          []*model.Bead
	ReadyTotal     int
	Blocked        []*model.Bead
	BlockedTotal   int
	RecentlyClosed []*model.Bead

	Total  int
	Open   int
	Closed int
}

// ReadyMore is the number of ready beads not included in the preview.
func (c SessionContext) ReadyMore() int { return c.ReadyTotal - len(c.Ready) }

// BlockedMore is the number of blocked beads not included in the preview.
func (c SessionContext) BlockedMore() int { return c.BlockedTotal - len(c.Blocked) }

// Context partitions the collection into in-progress, ready, blocked and
// recently closed beads.
func (g *Graph) Context() SessionContext {
	var ctx SessionContext
	var closed []*model.Bead
	for _, b := range g.order {
		ctx.Total++
		switch b.Status {
		case model.StatusInProgress:
			ctx.InProgress = append(ctx.InProgress, b)
		case model.StatusOpen:
			ctx.Open++
		case model.StatusClosed:
			ctx.Closed++
			closed = append(closed, b)
		}
	}

	ready := g.Ready()
	ctx.ReadyTotal = len(ready)
	ctx.Ready = ready[:min(len(ready), ReadyPreview)]

	blocked := g.Blocked()
	ctx.BlockedTotal = len(blocked)
	ctx.Blocked = blocked[:min(len(blocked), BlockedPreview)]

	// Stable so ties keep collection order. Beads closed through update
	// carry no closed stamp and sort last.
	slices.SortStableFunc(closed, func(a, b *model.Bead) int {
		return closedAt(b).Compare(closedAt(a).Time)
	})
	ctx.RecentlyClosed = closed[:min(len(closed), RecentlyClosed)]
	return ctx
}

func closedAt(b *model.Bead) model.Timestamp {
	if b.Closed == nil {
		return model.Timestamp{}
	}
	return *b.Closed
}
