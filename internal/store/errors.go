package store

import (
	"errors"
	"fmt"

	"github.com/RamXX/beads/internal/model"
)

var (
	// ErrNotInitialized is returned when no .beads directory can be found.
	ErrNotInitialized = errors.New("beads not initialized (run 'beads init' first)")
	// ErrNotFound is returned when a bead reference matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrMalformed is returned when the collection or config record cannot
	// be parsed. The load is aborted; there is no partial result.
	ErrMalformed = errors.New("malformed record")
	// ErrNoteRequired is returned by Close when the store requires a note.
	ErrNoteRequired = fmt.Errorf("%w: a note is required to close a bead", model.ErrInvalid)
)
