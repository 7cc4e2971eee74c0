package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/idgen"
	"github.com/RamXX/beads/internal/model"
	"github.com/charmbracelet/log"
)

// Collection is the in-memory state a mutation works on. Changes become
// durable only when Store.Update saves it.
type Collection struct {
	Beads    []*model.Bead
	Settings Settings
	Now      func() time.Time

	last time.Time
}

// NewCollection wraps beads for mutation. A nil clock means time.Now.
func NewCollection(beads []*model.Bead, settings Settings, now func() time.Time) *Collection {
	if now == nil {
		now = time.Now
	}
	return &Collection{Beads: beads, Settings: settings, Now: now}
}

// stamp returns the current time, nudged forward when the clock has not
// advanced past the previous stamp handed out by this collection.
func (c *Collection) stamp() model.Timestamp {
	ts := model.NewTimestamp(c.Now())
	if !c.last.IsZero() && !ts.After(c.last) {
		ts = model.NewTimestamp(c.last.Add(time.Microsecond))
	}
	c.last = ts.Time
	return ts
}

// Graph builds a query view over the current state.
func (c *Collection) Graph() *graph.Graph { return graph.Build(c.Beads) }

// Find resolves a full or suffix id to the first matching bead.
func (c *Collection) Find(ref string) (*model.Bead, error) {
	return Lookup(c.Beads, ref)
}

// Lookup is Find for read-only callers that hold a plain slice.
func Lookup(beads []*model.Bead, ref string) (*model.Bead, error) {
	if b := graph.Find(beads, ref); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("bead %q %w", ref, ErrNotFound)
}

func (c *Collection) exists(id string) bool {
	for _, b := range c.Beads {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (c *Collection) byID(id string) *model.Bead {
	for _, b := range c.Beads {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// AddOptions describes a new bead. Empty strings take the defaults.
type AddOptions struct {
	Title       string
	Type        string
	Agent       string
	Priority    string
	Description string
	Parent      string
	Tags        []string
	Files       []string
}

// Add creates an open bead. A parent that does not resolve is ignored and
// the bead is created without the relationship.
func (c *Collection) Add(opts AddOptions) (*model.Bead, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrInvalid)
	}
	btype := model.TypeTask
	if opts.Type != "" {
		t, err := model.ParseBeadType(opts.Type)
		if err != nil {
			return nil, err
		}
		btype = t
	}
	priority := model.PriorityMedium
	if opts.Priority != "" {
		p, err := model.ParsePriority(opts.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	now := c.stamp()
	id, err := idgen.GenerateUnique(title, now.String(), c.exists)
	if err != nil {
		return nil, fmt.Errorf("generate ID: %w", err)
	}

	b := model.NewBead(id, title, now)
	b.Type = btype
	b.Priority = priority
	b.Agent = strings.TrimSpace(opts.Agent)
	b.Description = opts.Description
	b.AddTags(opts.Tags...)
	b.Files = model.NormalizeList(opts.Files)

	if opts.Parent != "" {
		if parent := graph.Find(c.Beads, opts.Parent); parent != nil {
			b.Relationships.Add(model.RelParent, parent.ID)
			parent.Relationships.Add(model.RelChild, b.ID)
			parent.Touch(now)
		} else {
			log.Debug("parent not found, creating without relationship", "parent", opts.Parent, "id", id)
		}
	}

	c.Beads = append(c.Beads, b)
	return b, nil
}

// UpdateOptions holds the fields to change. Empty strings leave the field as
// it is; there is no way to clear a field.
type UpdateOptions struct {
	Status      string
	Title       string
	Agent       string
	Priority    string
	Description string
	Note        string
}

// Update applies opts to the bead named by ref and always refreshes its
// updated timestamp. Every value is validated before anything changes.
func (c *Collection) Update(ref string, opts UpdateOptions) (*model.Bead, error) {
	b, err := c.Find(ref)
	if err != nil {
		return nil, err
	}

	var status model.Status
	if opts.Status != "" {
		if status, err = model.ParseStatus(opts.Status); err != nil {
			return nil, err
		}
		if b.IsClosed() && status != model.StatusClosed {
			return nil, fmt.Errorf("%w: bead %s is closed and cannot be reopened", model.ErrInvalid, b.ID)
		}
	}
	var priority model.Priority
	if opts.Priority != "" {
		if priority, err = model.ParsePriority(opts.Priority); err != nil {
			return nil, err
		}
	}

	now := c.stamp()
	if status != "" {
		b.Status = status
	}
	if t := strings.TrimSpace(opts.Title); t != "" {
		b.Title = t
	}
	if a := strings.TrimSpace(opts.Agent); a != "" {
		b.Agent = a
	}
	if priority != "" {
		b.Priority = priority
	}
	if opts.Description != "" {
		b.Description = opts.Description
	}
	if opts.Note != "" {
		b.AddNote(opts.Note, now)
	}
	b.Touch(now)
	return b, nil
}

// Progress marks the bead as in-progress.
func (c *Collection) Progress(ref string) (*model.Bead, error) {
	b, err := c.Find(ref)
	if err != nil {
		return nil, err
	}
	if b.IsClosed() {
		return nil, fmt.Errorf("%w: bead %s is closed", model.ErrInvalid, b.ID)
	}
	b.Status = model.StatusInProgress
	b.Touch(c.stamp())
	return b, nil
}
