package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/ui"
	"gopkg.in/yaml.v3"
)

const maxTitle = 60

func truncate(title string) string {
	if r := []rune(title); len(r) > maxTitle {
		return string(r[:maxTitle-3]) + "..."
	}
	return title
}

// Line renders a one-line entry: ID: TITLE [AGENT] (blocked).
func Line(b *model.Bead, blocked bool) string {
	line := fmt.Sprintf("%s: %s", b.ID, truncate(b.Title))
	if b.IsClosed() {
		return ui.RenderClosedLine(line)
	}
	if b.Agent != "" {
		line += " " + ui.RenderAccent("["+b.Agent+"]")
	}
	if blocked {
		line += " " + ui.RenderBlocked()
	}
	return line
}

// List renders beads grouped by stored status, in workflow order, and marks
// beads the graph considers blocked.
func List(w io.Writer, beads []*model.Bead, g *graph.Graph) {
	if len(beads) == 0 {
		fmt.Fprintln(w, "No beads found matching criteria.")
		return
	}

	byStatus := make(map[model.Status][]*model.Bead)
	for _, b := range beads {
		byStatus[b.Status] = append(byStatus[b.Status], b)
	}
	for _, st := range model.Statuses {
		group := byStatus[st]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s %s\n", ui.RenderStatusIcon(string(st)), ui.RenderBold(strings.ToUpper(string(st))))
		for _, b := range group {
			fmt.Fprintf(w, "  %s\n", Line(b, g.IsBlocked(b)))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d beads\n", len(beads))
}

// Table renders a compact list without grouping.
// Format: STATUS_ICON ID [PRIORITY] [TYPE] @AGENT [TAGS] - TITLE
func Table(w io.Writer, beads []*model.Bead) {
	if len(beads) == 0 {
		fmt.Fprintln(w, "No beads found.")
		return
	}
	for _, b := range beads {
		title := truncate(b.Title)
		if b.IsClosed() {
			line := fmt.Sprintf("%s %s [%s] [%s] - %s",
				ui.StatusIconClosed, b.ID, b.Priority, b.Type, title)
			fmt.Fprintln(w, ui.RenderClosedLine(line))
			continue
		}

		var parts []string
		parts = append(parts, ui.RenderStatusIcon(string(b.Status)))
		parts = append(parts, b.ID)
		parts = append(parts, fmt.Sprintf("[%s]", ui.RenderPriority(string(b.Priority))))
		parts = append(parts, fmt.Sprintf("[%s]", ui.RenderType(string(b.Type))))
		if b.Agent != "" {
			parts = append(parts, "@"+b.Agent)
		}
		if len(b.Tags) > 0 {
			parts = append(parts, fmt.Sprintf("[%s]", strings.Join(b.Tags, ", ")))
		}
		parts = append(parts, "- "+title)
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
	fmt.Fprintf(w, "\n%d bead(s)\n", len(beads))
}

// Detail renders a single bead. blockers are the beads still blocking it.
func Detail(w io.Writer, b *model.Bead, blockers []*model.Bead) {
	status := string(b.Status)

	// Header: STATUS_ICON ID . TITLE [PRIORITY . STATUS]
	fmt.Fprintf(w, "%s %s %s %s [%s %s %s]\n",
		ui.RenderStatusIcon(status),
		b.ID,
		ui.RenderMuted("."),
		ui.RenderBold(b.Title),
		ui.RenderPriority(string(b.Priority)),
		ui.RenderMuted("."),
		ui.RenderStatus(status),
	)

	var meta []string
	if b.Agent != "" {
		meta = append(meta, fmt.Sprintf("%s %s", ui.RenderAccent("Agent:"), b.Agent))
	}
	meta = append(meta, fmt.Sprintf("%s %s", ui.RenderAccent("Type:"), ui.RenderType(string(b.Type))))
	fmt.Fprintln(w, strings.Join(meta, fmt.Sprintf(" %s ", ui.RenderMuted("."))))

	fmt.Fprintf(w, "%s %s %s %s %s\n",
		ui.RenderAccent("Created:"), b.Created,
		ui.RenderMuted("."),
		ui.RenderAccent("Updated:"), b.Updated,
	)
	if b.Closed != nil {
		fmt.Fprintf(w, "%s %s\n", ui.RenderAccent("Closed:"), b.Closed)
	}
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.RenderAccent("Tags:"), strings.Join(b.Tags, ", "))
	}
	if len(b.Files) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.RenderAccent("Files:"), strings.Join(b.Files, ", "))
	}

	if !b.Relationships.IsEmpty() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.RenderBold("Relationships:"))
		for _, rel := range []model.Relation{
			model.RelParent, model.RelChild, model.RelBlocks, model.RelBlockedBy,
			model.RelRelated, model.RelDiscoveredFrom,
		} {
			ids := b.Relationships.IDs(rel)
			if len(ids) == 0 {
				continue
			}
			label := string(rel)
			if rel == model.RelChild {
				label = "children"
			}
			fmt.Fprintf(w, "  %s %s\n", ui.RenderAccent(label+":"), strings.Join(ids, ", "))
		}
	}
	if len(blockers) > 0 {
		ids := make([]string, len(blockers))
		for i, bl := range blockers {
			ids[i] = bl.ID
		}
		fmt.Fprintf(w, "%s by %s\n", ui.RenderBlocked(), strings.Join(ids, ", "))
	}

	if b.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, ui.RenderMarkdown(b.Description))
	}

	if len(b.Notes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.RenderBold("Notes:"))
		for _, n := range b.Notes {
			fmt.Fprintf(w, "  %s %s\n", ui.RenderMuted("["+n.Timestamp.String()+"]"), n.Text)
		}
	}
}

// Short renders a one-line summary of a bead.
func Short(w io.Writer, b *model.Bead) {
	fmt.Fprintf(w, "%s %s [%s] %s (%s)\n",
		ui.RenderStatusIcon(string(b.Status)),
		b.ID,
		ui.RenderStatus(string(b.Status)),
		b.Title,
		ui.RenderPriority(string(b.Priority)),
	)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
