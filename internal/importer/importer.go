// Package importer reads markdown task documents into tasks and checklist
// items. The format has no grammar; lines that are not recognised are
// ignored.
//
// Recognised lines, after trimming whitespace:
//
//	## Task 1: Title          starts a task; the title follows the first ':'
//	**Agent**: name           assigns the current task
//	- [ ] 1.1 Step - Files: a.go, b.go
//	                          adds an item to the current task
//
// A document may start with YAML front matter supplying agent, priority and
// tags defaults.
package importer

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/vlt"
	"gopkg.in/yaml.v3"
)

const (
	taskPrefix  = "## Task"
	agentPrefix = "**Agent**:"
	itemPrefix  = "- [ ]"
	filesMarker = "Files:"
)

// Item is one checklist entry. Agent is the task's agent at the point the
// item was read.
type Item struct {
	Title string
	Agent string
	Files []string
}

// Task is a heading and the items listed under it.
type Task struct {
	Title string
	Agent string
	Items []Item
}

// Document is a parsed task file.
type Document struct {
	Agent    string
	Priority string
	Tags     []string
	Tasks    []Task
}

// Len returns the number of beads the document describes.
func (d *Document) Len() int {
	n := len(d.Tasks)
	for _, t := range d.Tasks {
		n += len(t.Items)
	}
	return n
}

type frontMatter struct {
	Agent    string   `yaml:"agent"`
	Priority string   `yaml:"priority"`
	Tags     []string `yaml:"tags"`
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse extracts tasks and items from content.
func Parse(content string) (*Document, error) {
	doc := &Document{}
	body := content

	if yamlStr, bodyStart, found := vlt.ExtractFrontmatter(content); found {
		var fm frontMatter
		if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
			return nil, fmt.Errorf("%w: front matter: %v", model.ErrInvalid, err)
		}
		doc.Agent = strings.TrimSpace(fm.Agent)
		doc.Priority = strings.TrimSpace(fm.Priority)
		doc.Tags = model.NormalizeList(fm.Tags)

		lines := strings.SplitAfter(content, "\n")
		body = ""
		if bodyStart < len(lines) {
			body = strings.Join(lines[bodyStart:], "")
		}
	}

	var current *Task
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, taskPrefix):
			doc.Tasks = append(doc.Tasks, Task{Title: headingTitle(line), Agent: doc.Agent})
			current = &doc.Tasks[len(doc.Tasks)-1]

		case strings.HasPrefix(line, agentPrefix) && current != nil:
			current.Agent = strings.TrimSpace(strings.TrimPrefix(line, agentPrefix))

		case strings.HasPrefix(line, itemPrefix) && current != nil:
			item := parseItem(strings.TrimSpace(strings.TrimPrefix(line, itemPrefix)))
			if item.Title == "" {
				continue
			}
			item.Agent = current.Agent
			current.Items = append(current.Items, item)
		}
	}
	return doc, nil
}

func headingTitle(line string) string {
	if _, after, ok := strings.Cut(line, ":"); ok {
		if t := strings.TrimSpace(after); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(strings.TrimPrefix(line, taskPrefix)); t != "" {
		return t
	}
	return "Task"
}

func parseItem(text string) Item {
	// Drop a leading step number such as "1.1".
	if r, _ := utf8.DecodeRuneInString(text); unicode.IsDigit(r) {
		if _, rest, ok := strings.Cut(text, " "); ok {
			text = rest
		}
	}
	var files []string
	if before, after, ok := strings.Cut(text, filesMarker); ok {
		text = strings.TrimRight(strings.TrimSpace(before), " -")
		files = model.NormalizeList(strings.Split(after, ","))
	}
	if files == nil {
		files = []string{}
	}
	return Item{Title: strings.TrimSpace(text), Files: files}
}
