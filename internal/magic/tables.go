package magic

import (
	"context"
	"fmt"
	"time"

	"github.com/pml76/Kangaroo/internal/board"
	"golang.org/x/sync/errgroup"
)

// Tables holds the magic entries for every square and slider, with each
// slider's attack sets packed into one contiguous array. Tables are
// read-only once built and safe for concurrent lookups.
type Tables struct {
	entries [NumSliders][board.NumSquares]*Entry
	attacks [NumSliders][]board.Bitboard
	set     MagicSet
}

// Build searches a magic for all 128 square and slider pairs. Each pair gets
// its own generator seeded from cfg.Seed, so the result does not depend on
// scheduling. The first failure cancels the remaining searches and Build
// returns that error without tables.
func Build(ctx context.Context, cfg Config) (*Tables, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	var entries [NumSliders][board.NumSquares]*Entry

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, kind := range Sliders {
		for sq := range board.AllSquares() {
			g.Go(func() error {
				gen := NewGenerator(DeriveSeed(cfg.Seed, kind, sq), cfg.Heuristic)
				e, err := Search(gctx, sq, kind, gen, SearchOptions{MaxCandidates: cfg.MaxCandidates})
				if err != nil {
					return err
				}
				entries[kind][sq] = e
				log.Debug("magic found",
					"square", sq.String(),
					"kind", kind.String(),
					"magic", fmt.Sprintf("0x%016x", e.Magic),
					"bits", e.Bits(),
					"attempts", e.Attempts,
				)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		log.Error("magic build failed", "seed", cfg.Seed, "error", err)
		return nil, err
	}

	t := pack(entries)
	t.set.Seed = cfg.Seed
	log.Info("magic tables built",
		"seed", cfg.Seed,
		"workers", cfg.Workers,
		"rook_entries", len(t.attacks[Rook]),
		"bishop_entries", len(t.attacks[Bishop]),
		"duration", time.Since(start),
	)
	return t, nil
}

// FromMagics rebuilds tables from known magic numbers, validating every one.
// Any harmful collision fails the whole set.
func FromMagics(set MagicSet) (*Tables, error) {
	var entries [NumSliders][board.NumSquares]*Entry
	for _, kind := range Sliders {
		for sq := range board.AllSquares() {
			e, err := NewEntry(sq, kind, set.Get(kind, sq))
			if err != nil {
				return nil, err
			}
			entries[kind][sq] = e
		}
	}
	t := pack(entries)
	t.set.Seed = set.Seed
	return t, nil
}

// pack copies each entry's table into its slider's backing array and points
// the entry at its slice of it.
func pack(entries [NumSliders][board.NumSquares]*Entry) *Tables {
	t := &Tables{entries: entries}
	for _, kind := range Sliders {
		total := 0
		for _, e := range entries[kind] {
			total += e.Size()
		}

		backing := make([]board.Bitboard, total)
		var offset uint32
		for sq, e := range entries[kind] {
			n := uint32(e.Size())
			copy(backing[offset:offset+n], e.table)
			e.table = backing[offset : offset+n : offset+n]
			e.Offset = offset
			offset += n

			t.set.set(kind, board.Square(sq), e.Magic)
		}
		t.attacks[kind] = backing
	}
	return t
}

// Entry returns the entry for kind on sq.
func (t *Tables) Entry(kind Slider, sq board.Square) *Entry {
	return t.entries[kind][sq]
}

// Attacks returns the attack set of kind on sq for a full-board occupancy.
func (t *Tables) Attacks(kind Slider, sq board.Square, occupied board.Bitboard) board.Bitboard {
	m := t.entries[kind][sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return t.attacks[kind][m.Offset+uint32(idx)]
}

// Rook returns rook attacks using magic bitboards.
func (t *Tables) Rook(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Attacks(Rook, sq, occupied)
}

// Bishop returns bishop attacks using magic bitboards.
func (t *Tables) Bishop(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Attacks(Bishop, sq, occupied)
}

// Queen returns the union of rook and bishop attacks.
func (t *Tables) Queen(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.Rook(sq, occupied) | t.Bishop(sq, occupied)
}

// Len returns the packed table length for kind.
func (t *Tables) Len(kind Slider) int {
	return len(t.attacks[kind])
}

// Magics returns the magic numbers the tables were built with.
func (t *Tables) Magics() MagicSet {
	return t.set
}

// Verify exhaustively checks every entry against ray casting.
func (t *Tables) Verify() error {
	for _, kind := range Sliders {
		for _, e := range t.entries[kind] {
			if err := e.Verify(); err != nil {
				return err
			}
		}
	}
	return nil
}
