package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/RamXX/beads/internal/model"
	"github.com/natefinch/atomic"
)

// maxLineSize bounds a single record. Descriptions and notes can be long.
const maxLineSize = 16 << 20

// LoadFile reads every bead from a JSON lines file. A missing file yields an
// empty collection. Blank lines are skipped; any other line that does not
// decode to a valid bead fails the whole load.
func LoadFile(path string) ([]*model.Bead, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Bead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	beads := []*model.Bead{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var b model.Bead
		if err := json.Unmarshal(line, &b); err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", path, lineNo, ErrMalformed, err)
		}
		b.ApplyDefaults()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", path, lineNo, ErrMalformed, err)
		}
		beads = append(beads, &b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w: %v", path, lineNo+1, ErrMalformed, err)
	}
	return beads, nil
}

// SaveFile writes beads in slice order, one JSON object per line, and swaps
// the result into place so readers never observe a truncated file.
func SaveFile(path string, beads []*model.Bead) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, b := range beads {
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode %s: %w", b.ID, err)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
