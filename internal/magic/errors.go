package magic

import (
	"errors"
	"fmt"

	"github.com/pml76/Kangaroo/internal/board"
)

var (
	// ErrSearchExhausted is returned when a bounded search runs out of
	// candidates before one is accepted.
	ErrSearchExhausted = errors.New("magic search exhausted")

	// ErrInvalidMagic is returned when a supplied magic number maps two
	// occupancies with different attack sets to the same index.
	ErrInvalidMagic = errors.New("magic number has a harmful collision")

	// ErrInvalidOccupancy is returned by checked lookups given an occupancy
	// with bits outside the blocker mask.
	ErrInvalidOccupancy = errors.New("occupancy outside blocker mask")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid magic config")
)

// SearchError reports a search for one square that ended without a magic.
//
// The cause is ErrSearchExhausted or the context error and can be reached
// with errors.Is.
type SearchError struct {
	Square   board.Square
	Kind     Slider
	Attempts uint64
	cause    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s magic search on %s stopped after %d candidates: %v", e.Kind, e.Square, e.Attempts, e.cause)
}

func (e *SearchError) Unwrap() error { return e.cause }

// MagicError reports a known magic number that failed validation.
type MagicError struct {
	Square board.Square
	Kind   Slider
	Magic  uint64
	cause  error
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("%s magic 0x%016x on %s: %v", e.Kind, e.Magic, e.Square, e.cause)
}

func (e *MagicError) Unwrap() error { return e.cause }
