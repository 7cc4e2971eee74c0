package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/ui"
)

const rule = "============================================================"

// ContextView is the JSON shape of a session context.
type ContextView struct {
	InProgress     []*model.Bead `json:"in_progress"`
	Ready          []*model.Bead `json:"ready"`
	ReadyMore      int           `json:"ready_more"`
	Blocked        []*model.Bead `json:"blocked"`
	BlockedMore    int           `json:"blocked_more"`
	RecentlyClosed []*model.Bead `json:"recently_closed"`
	Total          int           `json:"total"`
	Open           int           `json:"open"`
	Closed         int           `json:"closed"`
}

// NewContextView flattens ctx for serialisation.
func NewContextView(ctx graph.SessionContext) ContextView {
	orEmpty := func(b []*model.Bead) []*model.Bead {
		if b == nil {
			return []*model.Bead{}
		}
		return b
	}
	return ContextView{
		InProgress:     orEmpty(ctx.InProgress),
		Ready:          orEmpty(ctx.Ready),
		ReadyMore:      ctx.ReadyMore(),
		Blocked:        orEmpty(ctx.Blocked),
		BlockedMore:    ctx.BlockedMore(),
		RecentlyClosed: orEmpty(ctx.RecentlyClosed),
		Total:          ctx.Total,
		Open:           ctx.Open,
		Closed:         ctx.Closed,
	}
}

// Context renders the session summary: what is in flight, what can be
// picked up, what is waiting and what was finished last.
func Context(w io.Writer, ctx graph.SessionContext, g *graph.Graph) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, ui.RenderBold("BEADS SESSION CONTEXT"))
	fmt.Fprintln(w, rule)

	if len(ctx.InProgress) > 0 {
		section(w, model.StatusInProgress, fmt.Sprintf("IN PROGRESS (%d)", len(ctx.InProgress)))
		for _, b := range ctx.InProgress {
			fmt.Fprintf(w, "   %s\n", Line(b, false))
		}
	}

	if ctx.ReadyTotal > 0 {
		section(w, model.StatusOpen, fmt.Sprintf("READY TO WORK (%d)", ctx.ReadyTotal))
		for _, b := range ctx.Ready {
			fmt.Fprintf(w, "   %s\n", Line(b, false))
		}
		if more := ctx.ReadyMore(); more > 0 {
			fmt.Fprintf(w, "   %s\n", ui.RenderMuted(fmt.Sprintf("... and %d more", more)))
		}
	}

	if ctx.BlockedTotal > 0 {
		section(w, model.StatusBlocked, fmt.Sprintf("BLOCKED (%d)", ctx.BlockedTotal))
		for _, b := range ctx.Blocked {
			var ids []string
			for _, bl := range g.BlockersOf(b.ID) {
				ids = append(ids, bl.ID)
			}
			fmt.Fprintf(w, "   %s: %s %s\n", b.ID, truncate(b.Title),
				ui.RenderMuted("(by: "+strings.Join(ids, ", ")+")"))
		}
		if more := ctx.BlockedMore(); more > 0 {
			fmt.Fprintf(w, "   %s\n", ui.RenderMuted(fmt.Sprintf("... and %d more", more)))
		}
	}

	if len(ctx.RecentlyClosed) > 0 {
		section(w, model.StatusClosed, "RECENTLY CLOSED")
		for _, b := range ctx.RecentlyClosed {
			fmt.Fprintf(w, "   %s\n", Line(b, false))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d | Open: %d | Closed: %d\n", ctx.Total, ctx.Open, ctx.Closed)
	fmt.Fprintln(w, rule)
}

func section(w io.Writer, st model.Status, title string) {
	fmt.Fprintf(w, "\n%s %s\n", ui.RenderStatusIcon(string(st)), ui.RenderBold(title))
}
