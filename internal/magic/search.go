package magic

import (
	"context"

	"github.com/pml76/Kangaroo/internal/board"
)

// ctxCheckInterval is how many raw candidates are drawn between context
// checks.
const ctxCheckInterval = 1024

// SearchOptions bounds a single search.
type SearchOptions struct {
	// MaxCandidates caps the number of raw candidates drawn, including
	// those the heuristic filter rejects. Zero means no cap: the search runs
	// until a magic is found or ctx ends.
	MaxCandidates uint64
}

// groundTruth is every (occupancy, attack set) pair for one square and
// slider. It is computed once and reused by every candidate.
type groundTruth struct {
	sq      board.Square
	kind    Slider
	mask    board.Bitboard
	shift   uint8
	occs    []board.Bitboard
	attacks []board.Bitboard
}

func newGroundTruth(sq board.Square, kind Slider) *groundTruth {
	mask := BlockerMask(sq, kind)
	n := 1 << mask.PopCount()
	gt := &groundTruth{
		sq:      sq,
		kind:    kind,
		mask:    mask,
		shift:   uint8(64 - mask.PopCount()),
		occs:    make([]board.Bitboard, 0, n),
		attacks: make([]board.Bitboard, 0, n),
	}
	for occ := range Occupancies(mask) {
		gt.occs = append(gt.occs, occ)
		gt.attacks = append(gt.attacks, SlowAttacks(sq, kind, occ))
	}
	return gt
}

func (gt *groundTruth) newTable() *trialTable {
	n := len(gt.occs)
	return &trialTable{
		slots: make([]board.Bitboard, n),
		stamp: make([]uint32, n),
	}
}

func (gt *groundTruth) entry(magic uint64, t *trialTable) *Entry {
	return &Entry{
		Square: gt.sq,
		Kind:   gt.kind,
		Mask:   gt.mask,
		Magic:  magic,
		Shift:  gt.shift,
		table:  t.slots,
	}
}

// trialTable is a hash table reused across candidates. A slot is empty
// unless its stamp equals the current epoch, so moving to the next
// candidate costs nothing.
type trialTable struct {
	slots []board.Bitboard
	stamp []uint32
	epoch uint32
}

// fill hashes every occupancy with magic. It returns false on the first
// harmful collision; benign collisions (equal attack sets) are allowed.
func (t *trialTable) fill(magic uint64, gt *groundTruth) bool {
	t.epoch++
	if t.epoch == 0 {
		clear(t.stamp)
		t.epoch = 1
	}

	for i, occ := range gt.occs {
		idx := (uint64(occ) * magic) >> gt.shift
		if t.stamp[idx] != t.epoch {
			t.stamp[idx] = t.epoch
			t.slots[idx] = gt.attacks[i]
			continue
		}
		if t.slots[idx] != gt.attacks[i] {
			return false
		}
	}

	// Drop leftovers of rejected candidates from slots nothing maps to.
	for idx := range t.slots {
		if t.stamp[idx] != t.epoch {
			t.slots[idx] = board.Empty
		}
	}
	return true
}

// Search finds a magic number for sq and kind by drawing candidates from gen
// until one hashes every occupancy without a harmful collision.
//
// With a zero MaxCandidates the search has no upper bound and only ctx can
// stop it. A stopped search returns a *SearchError and no entry.
func Search(ctx context.Context, sq board.Square, kind Slider, gen *Generator, opts SearchOptions) (*Entry, error) {
	gt := newGroundTruth(sq, kind)
	table := gt.newTable()

	for attempt := uint64(1); ; attempt++ {
		if opts.MaxCandidates > 0 && attempt > opts.MaxCandidates {
			return nil, &SearchError{Square: sq, Kind: kind, Attempts: attempt - 1, cause: ErrSearchExhausted}
		}
		if (attempt-1)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &SearchError{Square: sq, Kind: kind, Attempts: attempt - 1, cause: err}
			}
		}

		magic, ok := gen.Next(gt.mask)
		if !ok {
			continue
		}
		if table.fill(magic, gt) {
			e := gt.entry(magic, table)
			e.Attempts = attempt
			return e, nil
		}
	}
}
