package magic

import (
	"fmt"

	"github.com/pml76/Kangaroo/internal/board"
)

// Entry holds the magic bitboard data for a single square and slider. It is
// built once, fully validated, and never modified afterwards.
type Entry struct {
	Square board.Square
	Kind   Slider
	Mask   board.Bitboard // Relevant occupancy mask (excludes ray ends)
	Magic  uint64         // Magic multiplier
	Shift  uint8          // Bits to shift right, 64 - popcount(Mask)
	Offset uint32         // Index into the packed per-slider table

	// Attempts is how many raw candidates the search drew, 0 for entries built
	// from a known magic.
	Attempts uint64

	table []board.Bitboard
}

// Index hashes the relevant part of occupied into the entry's table.
func (e *Entry) Index(occupied board.Bitboard) uint64 {
	return ((uint64(occupied) & uint64(e.Mask)) * e.Magic) >> e.Shift
}

// Attacks returns the attack set for a full-board occupancy.
func (e *Entry) Attacks(occupied board.Bitboard) board.Bitboard {
	return e.table[e.Index(occupied)]
}

// CheckedAttacks is Attacks for callers that pass a relevant occupancy and
// want out-of-mask bits reported instead of silently masked.
func (e *Entry) CheckedAttacks(occ board.Bitboard) (board.Bitboard, error) {
	if !occ.SubsetOf(e.Mask) {
		return 0, fmt.Errorf("%s on %s, stray bits %s: %w", e.Kind, e.Square, (occ &^ e.Mask).Hex(), ErrInvalidOccupancy)
	}
	return e.Attacks(occ), nil
}

// Bits returns the hash width.
func (e *Entry) Bits() int {
	return 64 - int(e.Shift)
}

// Size returns the number of table slots.
func (e *Entry) Size() int {
	return len(e.table)
}

// Verify checks every occupancy of the mask against ray casting.
func (e *Entry) Verify() error {
	for occ := range Occupancies(e.Mask) {
		want := SlowAttacks(e.Square, e.Kind, occ)
		if got := e.Attacks(occ); got != want {
			return &MagicError{
				Square: e.Square,
				Kind:   e.Kind,
				Magic:  e.Magic,
				cause:  fmt.Errorf("occupancy %s maps to %s, want %s: %w", occ.Hex(), got.Hex(), want.Hex(), ErrInvalidMagic),
			}
		}
	}
	return nil
}

// NewEntry builds the entry for a known magic number. It fails with a
// *MagicError wrapping ErrInvalidMagic if magic has a harmful collision.
func NewEntry(sq board.Square, kind Slider, magic uint64) (*Entry, error) {
	gt := newGroundTruth(sq, kind)
	table := gt.newTable()
	if !table.fill(magic, gt) {
		return nil, &MagicError{Square: sq, Kind: kind, Magic: magic, cause: ErrInvalidMagic}
	}
	return gt.entry(magic, table), nil
}
