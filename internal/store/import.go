package store

import (
	"fmt"
	"strconv"

	"github.com/RamXX/beads/internal/idgen"
	"github.com/RamXX/beads/internal/importer"
	"github.com/RamXX/beads/internal/model"
)

const (
	TagImported = "imported"
	TagSubtask  = "subtask"
)

// Import adds one bead per task and one child bead per item, wired as
// parent and children. All beads share one timestamp; ids mix in the
// running index so identical titles do not collide. Beads are returned in
// creation order.
func (c *Collection) Import(doc *importer.Document) ([]*model.Bead, error) {
	priority := model.PriorityMedium
	if doc.Priority != "" {
		p, err := model.ParsePriority(doc.Priority)
		if err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
		priority = p
	}

	now := c.stamp()
	var imported []*model.Bead
	newBead := func(title, agent string, tags ...string) (*model.Bead, error) {
		seed := now.String() + strconv.Itoa(len(imported))
		id, err := idgen.GenerateUnique(title, seed, c.exists)
		if err != nil {
			return nil, fmt.Errorf("generate ID: %w", err)
		}
		b := model.NewBead(id, title, now)
		b.Agent = agent
		b.Priority = priority
		b.AddTags(tags...)
		b.AddTags(doc.Tags...)
		c.Beads = append(c.Beads, b)
		imported = append(imported, b)
		return b, nil
	}

	for _, task := range doc.Tasks {
		parent, err := newBead(task.Title, task.Agent, TagImported)
		if err != nil {
			return nil, err
		}
		for _, item := range task.Items {
			child, err := newBead(item.Title, item.Agent, TagImported, TagSubtask)
			if err != nil {
				return nil, err
			}
			child.Files = model.NormalizeList(item.Files)
			child.Relationships.Add(model.RelParent, parent.ID)
			parent.Relationships.Add(model.RelChild, child.ID)
		}
	}
	return imported, nil
}
