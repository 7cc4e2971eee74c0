package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestMain(m *testing.M) {
	os.Setenv("NO_COLOR", "1")
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// on the package-level command tree between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("beads %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// addBead creates a bead and returns its id.
func addBead(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out := mustRun(t, dir, append([]string{"--quiet", "add"}, args...)...)
	return strings.TrimSpace(out)
}

func showBead(t *testing.T, dir, id string) *model.Bead {
	t.Helper()
	out := mustRun(t, dir, "--json", "show", id)
	var b model.Bead
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode show output: %v\n%s", err, out)
	}
	return &b
}

func initDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "init")
	return dir
}

func TestInitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "init")
	if !strings.Contains(out, "Initialized beads at") {
		t.Errorf("first init: %q", out)
	}
	out = mustRun(t, dir, "init")
	if !strings.Contains(out, "already initialized") {
		t.Errorf("second init: %q", out)
	}
	for _, name := range []string{store.IssuesFile, store.ConfigFile} {
		if _, err := os.Stat(filepath.Join(dir, store.DirName, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestCommandsRequireStore(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{{"list"}, {"add", "x"}, {"context"}, {"show", "abc"}} {
		if _, err := run(t, dir, args...); !errors.Is(err, store.ErrNotInitialized) {
			t.Errorf("%v: err = %v, want ErrNotInitialized", args, err)
		}
	}
}

func TestAddAndCloseWithNote(t *testing.T) {
	dir := initDir(t)
	id := addBead(t, dir, "Fix login bug", "--type", "bug", "--priority", "high")

	b := showBead(t, dir, id)
	if b.Status != model.StatusOpen || b.Type != model.TypeBug || b.Priority != model.PriorityHigh {
		t.Errorf("unexpected bead: %+v", b)
	}
	if !b.Relationships.IsEmpty() {
		t.Errorf("relationships = %+v", b.Relationships)
	}

	out := mustRun(t, dir, "close", id, "--note", "patched")
	if !strings.Contains(out, "Closed: "+id+" - Fix login bug") {
		t.Errorf("close output: %q", out)
	}
	b = showBead(t, dir, id)
	if b.Status != model.StatusClosed || b.Closed == nil {
		t.Errorf("not closed: %+v", b)
	}
	if len(b.Notes) != 1 || b.Notes[0].Text != "Closed: patched" {
		t.Errorf("notes = %+v", b.Notes)
	}
}

func TestAddWithTagsAndFiles(t *testing.T) {
	dir := initDir(t)
	id := addBead(t, dir, "Refactor", "--tags", "tech-debt, backend", "--files", "a.go,,b.go", "--agent", "dev")
	b := showBead(t, dir, id)
	if len(b.Tags) != 2 || len(b.Files) != 2 || b.Files[1] != "b.go" || b.Agent != "dev" {
		t.Errorf("unexpected bead: %+v", b)
	}
}

func TestParentAndChild(t *testing.T) {
	dir := initDir(t)
	parent := addBead(t, dir, "Parent")
	child := addBead(t, dir, "Child", "--parent", parent)

	out := mustRun(t, dir, "show", parent)
	if !strings.Contains(out, "children: "+child) {
		t.Errorf("show parent:\n%s", out)
	}
	out = mustRun(t, dir, "show", child)
	if !strings.Contains(out, "parent: "+parent) {
		t.Errorf("show child:\n%s", out)
	}

	out = mustRun(t, dir, "children", parent)
	if !strings.Contains(out, child) || !strings.Contains(out, "Progress: 0/1 closed") {
		t.Errorf("children:\n%s", out)
	}
}

func TestBlocksThenCloseUnblocks(t *testing.T) {
	dir := initDir(t)
	a := addBead(t, dir, "Schema")
	b := addBead(t, dir, "Migration")

	out := mustRun(t, dir, "link", a, "blocks", b)
	if !strings.Contains(out, "Linked: "+a+" --blocks--> "+b) {
		t.Errorf("link output: %q", out)
	}
	if !showBead(t, dir, b).Relationships.Has(model.RelBlockedBy, a) {
		t.Error("inverse edge missing")
	}

	out = mustRun(t, dir, "list", "--blocked")
	if !strings.Contains(out, b) {
		t.Errorf("list --blocked should include %s:\n%s", b, out)
	}

	out = mustRun(t, dir, "close", a)
	if !strings.Contains(out, "Unblocked:") || !strings.Contains(out, b+": Migration") {
		t.Errorf("close output should report %s:\n%s", b, out)
	}

	out = mustRun(t, dir, "list", "--blocked")
	if strings.Contains(out, b) {
		t.Errorf("list --blocked should exclude %s:\n%s", b, out)
	}
}

func TestListHidesClosedByDefault(t *testing.T) {
	dir := initDir(t)
	open := addBead(t, dir, "Still open")
	done := addBead(t, dir, "Done")
	mustRun(t, dir, "close", done)

	out := mustRun(t, dir, "list")
	if !strings.Contains(out, open) || strings.Contains(out, done) {
		t.Errorf("default list:\n%s", out)
	}
	for _, args := range [][]string{{"list", "--all"}, {"list", "--status", "closed"}} {
		if out := mustRun(t, dir, args...); !strings.Contains(out, done) {
			t.Errorf("%v should include %s:\n%s", args, done, out)
		}
	}
}

func TestUpdateAndProgress(t *testing.T) {
	dir := initDir(t)
	id := addBead(t, dir, "Write docs")

	mustRun(t, dir, "update", id, "--title", "Write the docs", "--note", "started outline")
	b := showBead(t, dir, id)
	if b.Title != "Write the docs" || len(b.Notes) != 1 {
		t.Errorf("after update: %+v", b)
	}

	out := mustRun(t, dir, "progress", id[len(id)-3:])
	if !strings.Contains(out, "In progress: "+id) {
		t.Errorf("progress output: %q", out)
	}
	if got := showBead(t, dir, id).Status; got != model.StatusInProgress {
		t.Errorf("status = %q", got)
	}
}

func TestUserErrors(t *testing.T) {
	dir := initDir(t)
	a := addBead(t, dir, "A")
	b := addBead(t, dir, "B")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown bead", []string{"show", "bd-zzzzzz"}, store.ErrNotFound},
		{"unknown target", []string{"link", a, "blocks", "bd-zzzzzz"}, store.ErrNotFound},
		{"unknown relationship", []string{"link", a, "depends-on", b}, model.ErrInvalid},
		{"self link", []string{"link", a, "related", a}, model.ErrInvalid},
		{"bad status", []string{"update", a, "--status", "done"}, model.ErrInvalid},
		{"bad type", []string{"add", "x", "--type", "epic"}, model.ErrInvalid},
		{"bad sort", []string{"list", "--sort", "size"}, model.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, dir, tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestContext(t *testing.T) {
	dir := initDir(t)
	a := addBead(t, dir, "Blocker")
	b := addBead(t, dir, "Waiting")
	mustRun(t, dir, "link", b, "blocked-by", a)

	out := mustRun(t, dir, "context")
	for _, want := range []string{"BEADS SESSION CONTEXT", "READY TO WORK (1)", "BLOCKED (1)", "(by: " + a + ")"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	out = mustRun(t, dir, "--json", "context")
	var view struct {
		Ready   []model.Bead `json:"ready"`
		Blocked []model.Bead `json:"blocked"`
		Total   int          `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if view.Total != 2 || len(view.Ready) != 1 || len(view.Blocked) != 1 || view.Blocked[0].ID != b {
		t.Errorf("view = %+v", view)
	}
}

func TestImportCreatesStore(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tasks.md")
	doc := "## Task 1: Backend\n**Agent**: api-dev\n- [ ] 1.1 Add route - Files: api/routes.go\n- [ ] 1.2 Add tests\n"
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "import", "--dry-run", file)
	if !strings.Contains(out, "Would import 3 beads") {
		t.Errorf("dry run: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, store.DirName)); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the store")
	}

	out = mustRun(t, dir, "import", file)
	if !strings.Contains(out, "Imported 3 beads from") {
		t.Errorf("import: %q", out)
	}

	out = mustRun(t, dir, "--json", "list")
	var beads []model.Bead
	if err := json.Unmarshal([]byte(out), &beads); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(beads) != 3 {
		t.Fatalf("got %d beads", len(beads))
	}
	if beads[0].Title != "Backend" || len(beads[0].Relationships.Children) != 2 {
		t.Errorf("parent = %+v", beads[0])
	}
	if beads[1].Agent != "api-dev" || beads[1].Relationships.Parent != beads[0].ID {
		t.Errorf("child = %+v", beads[1])
	}
}

func TestConfigCommands(t *testing.T) {
	dir := initDir(t)
	if out := mustRun(t, dir, "config", "get", "settings.require_note_on_close"); strings.TrimSpace(out) != "false" {
		t.Errorf("get = %q", out)
	}
	mustRun(t, dir, "config", "set", "settings.require_note_on_close", "true")

	id := addBead(t, dir, "Needs a note")
	if _, err := run(t, dir, "close", id); !errors.Is(err, store.ErrNoteRequired) {
		t.Errorf("close without note: err = %v", err)
	}
	mustRun(t, dir, "close", id, "--note", "done")

	if _, err := run(t, dir, "config", "set", "version", "2"); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("set version: err = %v", err)
	}
	out := mustRun(t, dir, "config", "list")
	if !strings.Contains(out, "settings.auto_close_children") {
		t.Errorf("list:\n%s", out)
	}
}

func TestDoctorFix(t *testing.T) {
	dir := initDir(t)
	now := model.NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	a := model.NewBead("bd-aaaaaa", "A", now)
	b := model.NewBead("bd-bbbbbb", "B", now)
	a.Relationships.Blocks = []string{b.ID}
	path := filepath.Join(dir, store.DirName, store.IssuesFile)
	if err := store.SaveFile(path, []*model.Bead{a, b}); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "doctor")
	if err == nil || !strings.Contains(out, "[SYNC]") {
		t.Errorf("doctor should report the missing inverse: err=%v\n%s", err, out)
	}

	mustRun(t, dir, "doctor", "--fix")
	if !showBead(t, dir, b.ID).Relationships.Has(model.RelBlockedBy, a.ID) {
		t.Error("fix did not add blocked-by")
	}
	out = mustRun(t, dir, "doctor")
	if !strings.Contains(out, "All 2 beads passed validation.") {
		t.Errorf("after fix:\n%s", out)
	}
}

func TestCountBy(t *testing.T) {
	now := model.NewTimestamp(time.Now())
	a := model.NewBead("bd-1", "a", now)
	a.Tags = []string{"x", "y"}
	b := model.NewBead("bd-2", "b", now)
	b.Type = model.TypeBug
	beads := []*model.Bead{a, b}

	got, err := countBy(beads, "type")
	if err != nil || got["task"] != 1 || got["bug"] != 1 {
		t.Errorf("by type = %v, %v", got, err)
	}
	got, _ = countBy(beads, "tag")
	if got["x"] != 1 || got["(untagged)"] != 1 {
		t.Errorf("by tag = %v", got)
	}
	if _, err := countBy(beads, "color"); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("err = %v", err)
	}
}

func TestParseSince(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	got, err := parseSince("2025-06-01", base)
	if err != nil || !got.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date: %v, %v", got, err)
	}

	got, err = parseSince("yesterday", base)
	if err != nil {
		t.Fatalf("yesterday: %v", err)
	}
	if !got.Before(base) || got.Before(base.Add(-48*time.Hour)) {
		t.Errorf("yesterday = %v", got)
	}

	if _, err := parseSince("gibberish", base); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("err = %v", err)
	}
}
