package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	if !ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func fg(light, dark string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
}

var (
	mutedStyle  = fg("#828c99", "#6c7680")
	accentStyle = fg("#399ee6", "#59c2ff")
	passStyle   = fg("#86b300", "#aad94c")
	boldStyle   = lipgloss.NewStyle().Bold(true)

	warnStyle    = fg("#f2ae49", "#ffb454")
	dimStyle     = fg("#9099a1", "#8090a0")
	alertStyle   = fg("#f07171", "#f26d78")
	orangeStyle  = fg("#ff8f40", "#ff8f40")
	yellowStyle  = fg("#e6b450", "#e6b450")
	purpleStyle  = fg("#d2a6ff", "#d2a6ff")
	seafoamStyle = fg("#4cbf99", "#95e6cb")
)

// Marks drawn in front of a bead line.
const (
	StatusIconClosed = "✓"
	priorityIcon     = "●"
	blockedMarker    = "⊘"
)

type mark struct {
	icon  string
	style *lipgloss.Style
}

// A nil style leaves the text uncolored.
var statusMarks = map[string]mark{
	"open":        {"○", nil},
	"in-progress": {"◐", &warnStyle},
	"blocked":     {"●", &alertStyle},
	"closed":      {StatusIconClosed, &dimStyle},
}

var priorityStyles = map[string]lipgloss.Style{
	"critical": alertStyle.Bold(true),
	"high":     orangeStyle,
	"medium":   yellowStyle,
}

var typeStyles = map[string]lipgloss.Style{
	"bug":       alertStyle,
	"feature":   purpleStyle,
	"discovery": seafoamStyle,
}

func (m mark) render(s string) string {
	if m.style == nil {
		return s
	}
	return m.style.Render(s)
}

func renderWith(styles map[string]lipgloss.Style, key, s string) string {
	if st, ok := styles[key]; ok {
		return st.Render(s)
	}
	return s
}

// RenderStatusIcon returns the colored icon for a status, or "?" when the
// status is unknown.
func RenderStatusIcon(status string) string {
	m, ok := statusMarks[status]
	if !ok {
		return "?"
	}
	return m.render(m.icon)
}

func RenderStatus(status string) string {
	return statusMarks[status].render(status)
}

// RenderPriority prefixes the priority name with a dot in its color.
func RenderPriority(priority string) string {
	return renderWith(priorityStyles, priority, priorityIcon+" "+priority)
}

func RenderType(beadType string) string {
	return renderWith(typeStyles, beadType, beadType)
}

// RenderBlocked marks a bead the graph considers blocked.
func RenderBlocked() string {
	return alertStyle.Render(blockedMarker + " blocked")
}

func RenderMuted(s string) string  { return mutedStyle.Render(s) }
func RenderBold(s string) string   { return boldStyle.Render(s) }
func RenderAccent(s string) string { return accentStyle.Render(s) }
func RenderPass(s string) string   { return passStyle.Render(s) }

// RenderClosedLine dims a whole line the way closed beads are shown.
func RenderClosedLine(line string) string {
	return dimStyle.Render(line)
}
