package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Relation is a relationship kind accepted by link.
type Relation string

const (
	RelBlocks         Relation = "blocks"
	RelBlockedBy      Relation = "blocked-by"
	RelParent         Relation = "parent"
	RelChild          Relation = "child"
	RelRelated        Relation = "related"
	RelDiscoveredFrom Relation = "discovered-from"
)

// Relations lists every kind accepted by ParseRelation.
var Relations = []Relation{RelBlocks, RelBlockedBy, RelParent, RelChild, RelRelated, RelDiscoveredFrom}

func ParseRelation(s string) (Relation, error) {
	r := Relation(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Relations, r) {
		return r, nil
	}
	names := make([]string, len(Relations))
	for i, rel := range Relations {
		names[i] = string(rel)
	}
	return "", fmt.Errorf("%w: relationship %q: must be one of %s", ErrInvalid, s, strings.Join(names, ", "))
}

// Inverse returns the edge recorded on the target when r is recorded on the
// source. discovered-from has no inverse.
func (r Relation) Inverse() (Relation, bool) {
	switch r {
	case RelBlocks:
		return RelBlockedBy, true
	case RelBlockedBy:
		return RelBlocks, true
	case RelParent:
		return RelChild, true
	case RelChild:
		return RelParent, true
	case RelRelated:
		return RelRelated, true
	case RelDiscoveredFrom:
		return "", false
	}
	return "", false
}

func (r Relation) String() string { return string(r) }

// Relationships holds one field per edge kind. Parent is single-valued;
// Children is only ever written as the inverse of a parent edge.
type Relationships struct {
	Blocks         []string `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	BlockedBy      []string `json:"blocked-by,omitempty" yaml:"blocked-by,omitempty"`
	Parent         string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children       []string `json:"children,omitempty" yaml:"children,omitempty"`
	Related        []string `json:"related,omitempty" yaml:"related,omitempty"`
	DiscoveredFrom []string `json:"discovered-from,omitempty" yaml:"discovered-from,omitempty"`
}

// IDs returns the targets recorded for kind.
func (r *Relationships) IDs(kind Relation) []string {
	switch kind {
	case RelBlocks:
		return r.Blocks
	case RelBlockedBy:
		return r.BlockedBy
	case RelParent:
		if r.Parent == "" {
			return nil
		}
		return []string{r.Parent}
	case RelChild:
		return r.Children
	case RelRelated:
		return r.Related
	case RelDiscoveredFrom:
		return r.DiscoveredFrom
	}
	return nil
}

// Has reports whether id is recorded under kind.
func (r *Relationships) Has(kind Relation, id string) bool {
	return slices.Contains(r.IDs(kind), id)
}

// Add records id under kind. It reports false when the edge was already
// present. For parent the previous value is replaced.
func (r *Relationships) Add(kind Relation, id string) bool {
	if r.Has(kind, id) {
		return false
	}
	switch kind {
	case RelBlocks:
		r.Blocks = append(r.Blocks, id)
	case RelBlockedBy:
		r.BlockedBy = append(r.BlockedBy, id)
	case RelParent:
		r.Parent = id
	case RelChild:
		r.Children = append(r.Children, id)
	case RelRelated:
		r.Related = append(r.Related, id)
	case RelDiscoveredFrom:
		r.DiscoveredFrom = append(r.DiscoveredFrom, id)
	default:
		return false
	}
	return true
}

// Remove drops id from kind.
func (r *Relationships) Remove(kind Relation, id string) {
	drop := func(ids []string) []string {
		return slices.DeleteFunc(ids, func(s string) bool { return s == id })
	}
	switch kind {
	case RelBlocks:
		r.Blocks = drop(r.Blocks)
	case RelBlockedBy:
		r.BlockedBy = drop(r.BlockedBy)
	case RelParent:
		if r.Parent == id {
			r.Parent = ""
		}
	case RelChild:
		r.Children = drop(r.Children)
	case RelRelated:
		r.Related = drop(r.Related)
	case RelDiscoveredFrom:
		r.DiscoveredFrom = drop(r.DiscoveredFrom)
	}
}

// IsEmpty reports whether no edge of any kind is recorded.
func (r *Relationships) IsEmpty() bool {
	return len(r.Blocks) == 0 && len(r.BlockedBy) == 0 && r.Parent == "" &&
		len(r.Children) == 0 && len(r.Related) == 0 && len(r.DiscoveredFrom) == 0
}

// UnmarshalJSON also reads the older shapes where
// parent was a list and its inverse was stored under "child".
func (r *Relationships) UnmarshalJSON(data []byte) error {
	type plain Relationships
	var aux struct {
		plain
		Parent json.RawMessage `json:"parent,omitempty"`
		Child  []string        `json:"child,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Relationships(aux.plain)

	if len(aux.Parent) > 0 && string(aux.Parent) != "null" {
		var single string
		if err := json.Unmarshal(aux.Parent, &single); err == nil {
			r.Parent = single
		} else {
			var many []string
			if err := json.Unmarshal(aux.Parent, &many); err != nil {
				return fmt.Errorf("relationships.parent: %w", err)
			}
			if len(many) > 0 {
				r.Parent = many[len(many)-1]
			}
		}
	}
	for _, c := range aux.Child {
		r.Add(RelChild, c)
	}
	return nil
}
