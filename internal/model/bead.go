package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when a value falls outside one of the closed
// enumerations (status, type, priority, relationship kind) or a record is
// missing a mandatory field.
var ErrInvalid = errors.New("invalid argument")

// Status is the stored workflow label of a bead. It is independent of the
// graph-derived blocked predicate computed by package graph.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusBlocked:    true,
	StatusClosed:     true,
}

// Statuses lists the statuses in display order.
var Statuses = []Status{StatusInProgress, StatusOpen, StatusBlocked, StatusClosed}

// ParseStatus accepts a status name, including the in_progress spelling.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "in_progress" {
		st = StatusInProgress
	}
	if !validStatuses[st] {
		return "", fmt.Errorf("%w: status %q: must be one of open, in-progress, blocked, closed", ErrInvalid, s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

// Priority is one of low, medium, high, critical.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists the priorities from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// ParsePriority accepts a priority name in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := priorityRank[p]; !ok {
		return "", fmt.Errorf("%w: priority %q: must be one of low, medium, high, critical", ErrInvalid, s)
	}
	return p, nil
}

// Rank orders priorities from 0 (critical) to 3 (low). Unknown values sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func (p Priority) String() string { return string(p) }

// BeadType classifies the nature of work.
type BeadType string

const (
	TypeTask      BeadType = "task"
	TypeBug       BeadType = "bug"
	TypeFeature   BeadType = "feature"
	TypeDiscovery BeadType = "discovery"
)

// BeadTypes lists the bead types in display order.
var BeadTypes = []BeadType{TypeTask, TypeBug, TypeFeature, TypeDiscovery}

var validTypes = map[BeadType]bool{
	TypeTask:      true,
	TypeBug:       true,
	TypeFeature:   true,
	TypeDiscovery: true,
}

// ParseBeadType accepts a bead type name in any case.
func ParseBeadType(s string) (BeadType, error) {
	t := BeadType(strings.ToLower(strings.TrimSpace(s)))
	if !validTypes[t] {
		return "", fmt.Errorf("%w: type %q: must be one of task, bug, feature, discovery", ErrInvalid, s)
	}
	return t, nil
}

func (t BeadType) String() string { return string(t) }

// Note is one entry of a bead's append-only audit trail.
type Note struct {
	Timestamp Timestamp `json:"timestamp" yaml:"timestamp"`
	Text      string    `json:"text" yaml:"text"`
}

// Bead is the unit of tracked work.
type Bead struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Type          BeadType      `json:"type" yaml:"type"`
	Status        Status        `json:"status" yaml:"status"`
	Created       Timestamp     `json:"created" yaml:"created"`
	Updated       Timestamp     `json:"updated" yaml:"updated"`
	Agent         string        `json:"agent" yaml:"agent,omitempty"`
	Priority      Priority      `json:"priority" yaml:"priority"`
	Tags          []string      `json:"tags" yaml:"tags,omitempty"`
	Description   string        `json:"description" yaml:"description,omitempty"`
	Files         []string      `json:"files" yaml:"files,omitempty"`
	Relationships Relationships `json:"relationships" yaml:"relationships,omitempty"`
	Notes         []Note        `json:"notes" yaml:"notes,omitempty"`
	Closed        *Timestamp    `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// MarshalJSON writes an unassigned agent as null.
func (b Bead) MarshalJSON() ([]byte, error) {
	type plain Bead
	var agent *string
	if b.Agent != "" {
		agent = &b.Agent
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		plain
		Agent *string `json:"agent"`
	}{plain(b), agent}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// NewBead returns an open bead with every field defaulted.
func NewBead(id, title string, now Timestamp) *Bead {
	return &Bead{
		ID:       id,
		Title:    title,
		Type:     TypeTask,
		Status:   StatusOpen,
		Created:  now,
		Updated:  now,
		Priority: PriorityMedium,
		Tags:     []string{},
		Files:    []string{},
		Notes:    []Note{},
	}
}

// ApplyDefaults fills optional fields that older records may omit.
func (b *Bead) ApplyDefaults() {
	if b.Type == "" {
		b.Type = TypeTask
	}
	if b.Priority == "" {
		b.Priority = PriorityMedium
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.Files == nil {
		b.Files = []string{}
	}
	if b.Notes == nil {
		b.Notes = []Note{}
	}
}

// Validate checks the mandatory keys and the enumerated fields.
func (b *Bead) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: bead id is required", ErrInvalid)
	}
	if b.Title == "" {
		return fmt.Errorf("%w: bead %s: title is required", ErrInvalid, b.ID)
	}
	if b.Status == "" {
		return fmt.Errorf("%w: bead %s: status is required", ErrInvalid, b.ID)
	}
	if !validStatuses[b.Status] {
		return fmt.Errorf("%w: bead %s: status %q", ErrInvalid, b.ID, b.Status)
	}
	if b.Type != "" && !validTypes[b.Type] {
		return fmt.Errorf("%w: bead %s: type %q", ErrInvalid, b.ID, b.Type)
	}
	if b.Priority != "" {
		if _, ok := priorityRank[b.Priority]; !ok {
			return fmt.Errorf("%w: bead %s: priority %q", ErrInvalid, b.ID, b.Priority)
		}
	}
	return nil
}

// IsClosed reports whether the stored status is closed.
func (b *Bead) IsClosed() bool {
	return b.Status == StatusClosed
}

// Touch refreshes the updated timestamp.
func (b *Bead) Touch(now Timestamp) {
	b.Updated = now
}

// AddNote appends to the audit trail. Notes are never edited or removed.
func (b *Bead) AddNote(text string, now Timestamp) {
	b.Notes = append(b.Notes, Note{Timestamp: now, Text: text})
}

// AddTags merges tags into the bead's tag set, keeping first-seen order.
func (b *Bead) AddTags(tags ...string) {
	b.Tags = NormalizeList(append(b.Tags, tags...))
}

// NormalizeList trims entries, drops empties and duplicates, and keeps order.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// SplitList parses a comma-separated flag value.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeList(strings.Split(s, ","))
}
