package store

import (
	"strings"

	"github.com/RamXX/beads/internal/model"
)

// CloseResult reports what a close changed.
type CloseResult struct {
	Bead *model.Bead
	// Cascaded are descendants closed because auto_close_children is set.
	Cascaded []*model.Bead
	// Unblocked are beads that named a closed bead in blocked-by and are no
	// longer blocked by anything.
	Unblocked []*model.Bead
}

// Close sets the bead's status to closed and stamps closed and updated.
// Closing an already closed bead stamps it again. With auto_close_children
// every descendant that is still open is closed too.
func (c *Collection) Close(ref, note string) (*CloseResult, error) {
	b, err := c.Find(ref)
	if err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if c.Settings.RequireNoteOnClose && note == "" {
		return nil, ErrNoteRequired
	}

	now := c.stamp()
	closeBead(b, now, note)
	res := &CloseResult{Bead: b}
	closedIDs := []string{b.ID}

	if c.Settings.AutoCloseChildren {
		for _, d := range c.Graph().Descendants(b.ID) {
			if d.IsClosed() {
				continue
			}
			closeBead(d, now, "parent "+b.ID+" closed")
			res.Cascaded = append(res.Cascaded, d)
			closedIDs = append(closedIDs, d.ID)
		}
	}

	res.Unblocked = c.Graph().Unblocked(closedIDs...)
	return res, nil
}

func closeBead(b *model.Bead, now model.Timestamp, note string) {
	b.Status = model.StatusClosed
	closed := now
	b.Closed = &closed
	b.Touch(now)
	if note != "" {
		b.AddNote("Closed: "+note, now)
	}
}
