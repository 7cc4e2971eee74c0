package store

import (
	"fmt"

	"github.com/RamXX/beads/internal/model"
)

// LinkResult is the edge as stored. A child link is recorded as the
// equivalent parent link, so Source and Target may be swapped relative to
// the call.
type LinkResult struct {
	Source   *model.Bead
	Relation model.Relation
	Target   *model.Bead
	// Added is false when the edge already existed.
	Added bool
}

// Link records rel from src to dst together with its inverse on dst. Both
// ends must exist. Re-linking adds nothing but still refreshes both updated
// timestamps.
func (c *Collection) Link(srcRef string, rel model.Relation, dstRef string) (*LinkResult, error) {
	if _, err := model.ParseRelation(string(rel)); err != nil {
		return nil, err
	}
	src, err := c.Find(srcRef)
	if err != nil {
		return nil, err
	}
	dst, err := c.Find(dstRef)
	if err != nil {
		return nil, err
	}
	if src.ID == dst.ID {
		return nil, fmt.Errorf("%w: bead %s cannot be linked to itself", model.ErrInvalid, src.ID)
	}

	if rel == model.RelChild {
		src, dst = dst, src
		rel = model.RelParent
	}
	if rel == model.RelParent {
		for _, d := range c.Graph().Descendants(src.ID) {
			if d.ID == dst.ID {
				return nil, fmt.Errorf("%w: %s is below %s in the hierarchy and cannot be its parent", model.ErrInvalid, dst.ID, src.ID)
			}
		}
	}

	var added bool
	switch rel {
	case model.RelParent:
		added = c.setParent(src, dst)
	default:
		added = src.Relationships.Add(rel, dst.ID)
		if inv, ok := rel.Inverse(); ok {
			if dst.Relationships.Add(inv, src.ID) {
				added = true
			}
		}
	}

	now := c.stamp()
	src.Touch(now)
	dst.Touch(now)
	return &LinkResult{Source: src, Relation: rel, Target: dst, Added: added}, nil
}

// setParent makes parent the single parent of child, removing child from
// the previous parent's children.
func (c *Collection) setParent(child, parent *model.Bead) bool {
	if old := child.Relationships.Parent; old != "" && old != parent.ID {
		if prev := c.byID(old); prev != nil {
			prev.Relationships.Remove(model.RelChild, child.ID)
			prev.Touch(c.stamp())
		}
	}
	added := child.Relationships.Add(model.RelParent, parent.ID)
	if parent.Relationships.Add(model.RelChild, child.ID) {
		added = true
	}
	return added
}
