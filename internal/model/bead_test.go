package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		err   bool
	}{
		{"open", StatusOpen, false},
		{"in-progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"BLOCKED", StatusBlocked, false},
		{"  closed  ", StatusClosed, false},
		{"deferred", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.err && err == nil {
			t.Errorf("ParseStatus(%q) expected error", tt.input)
		}
		if tt.err && !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseStatus(%q) error should wrap ErrInvalid, got %v", tt.input, err)
		}
		if !tt.err && err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
		err   bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{"HIGH", PriorityHigh, false},
		{"critical", PriorityCritical, false},
		{"P1", "", true},
		{"urgent", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if tt.err && err == nil {
			t.Errorf("ParsePriority(%q) expected error", tt.input)
		}
		if !tt.err && err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityCritical.Rank() < PriorityHigh.Rank() &&
		PriorityHigh.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("ranks should order critical < high < medium < low")
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should sort after low")
	}
}

func TestParseBeadType(t *testing.T) {
	tests := []struct {
		input string
		want  BeadType
		err   bool
	}{
		{"task", TypeTask, false},
		{"BUG", TypeBug, false},
		{"feature", TypeFeature, false},
		{"discovery", TypeDiscovery, false},
		{"epic", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBeadType(tt.input)
		if tt.err && err == nil {
			t.Errorf("ParseBeadType(%q) expected error", tt.input)
		}
		if !tt.err && err != nil {
			t.Errorf("ParseBeadType(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseBeadType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewBeadDefaults(t *testing.T) {
	now := NewTimestamp(time.Now())
	b := NewBead("bd-abc123", "Write docs", now)
	if b.Status != StatusOpen {
		t.Errorf("status = %q, want open", b.Status)
	}
	if b.Type != TypeTask {
		t.Errorf("type = %q, want task", b.Type)
	}
	if b.Priority != PriorityMedium {
		t.Errorf("priority = %q, want medium", b.Priority)
	}
	if !b.Created.Equal(now) || !b.Updated.Equal(now) {
		t.Error("created and updated should both equal now")
	}
	if b.Closed != nil {
		t.Error("closed should be nil on a new bead")
	}
	if !b.Relationships.IsEmpty() {
		t.Error("relationships should be empty")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("new bead should validate: %v", err)
	}
}

func TestAgentNullWhenUnassigned(t *testing.T) {
	b := NewBead("bd-abc123", "Write docs", NewTimestamp(time.Now()))
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if v, ok := raw["agent"]; !ok || v != nil {
		t.Errorf("agent = %#v, want null", raw["agent"])
	}
	if _, ok := raw["plain"]; ok {
		t.Error("embedded type leaked into the record")
	}

	var back Bead
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Agent != "" || back.ID != b.ID {
		t.Errorf("round trip = %+v", back)
	}

	b.Agent = "dev"
	data, _ = json.Marshal(b)
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["agent"] != "dev" {
		t.Errorf("agent = %#v, want dev", raw["agent"])
	}
}

func TestValidate(t *testing.T) {
	valid := NewBead("bd-abc123", "Test bead", NewTimestamp(time.Now()))

	noID := *valid
	noID.ID = ""
	if err := noID.Validate(); err == nil {
		t.Error("expected error for missing id")
	}

	noTitle := *valid
	noTitle.Title = ""
	if err := noTitle.Validate(); err == nil {
		t.Error("expected error for missing title")
	}

	noStatus := *valid
	noStatus.Status = ""
	if err := noStatus.Validate(); err == nil {
		t.Error("expected error for missing status")
	}

	badType := *valid
	badType.Type = "epic"
	if err := badType.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad type, got %v", err)
	}

	badPri := *valid
	badPri.Priority = "P0"
	if err := badPri.Validate(); err == nil {
		t.Error("expected error for bad priority")
	}
}

func TestAddTagsIsASet(t *testing.T) {
	b := NewBead("bd-1", "x", NewTimestamp(time.Now()))
	b.AddTags("api", " ui ", "api", "")
	b.AddTags("ui", "db")
	want := []string{"api", "ui", "db"}
	if len(b.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", b.Tags, want)
	}
	for i := range want {
		if b.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, b.Tags[i], want[i])
		}
	}
}

func TestTimestampFormat(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 891234567, time.UTC))
	if got, want := ts.String(), "2025-03-04T05:06:07.891234Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(ts) {
		t.Errorf("round trip = %v, want %v", back, ts)
	}
}

func TestTimestampsSortLexically(t *testing.T) {
	early := NewTimestamp(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	late := NewTimestamp(time.Date(2025, 1, 1, 10, 0, 0, 500, time.UTC))
	if !(early.String() < late.String()) {
		t.Errorf("%s should sort before %s", early, late)
	}
}

func TestParseTimestampLegacy(t *testing.T) {
	for _, in := range []string{
		"2024-06-01T12:30:45.123456",
		"2024-06-01T12:30:45",
		"2024-06-01T12:30:45Z",
		"2024-06-01T12:30:45.5+02:00",
	} {
		if _, err := ParseTimestamp(in); err != nil {
			t.Errorf("ParseTimestamp(%q): %v", in, err)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}
