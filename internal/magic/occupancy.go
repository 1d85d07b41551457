package magic

import (
	"iter"

	"github.com/pml76/Kangaroo/internal/board"
)

// Occupancies yields every subset of mask exactly once, starting with the
// empty set. The order is an implementation detail.
func Occupancies(mask board.Bitboard) iter.Seq[board.Bitboard] {
	return func(yield func(board.Bitboard) bool) {
		var sub board.Bitboard
		for {
			if !yield(sub) {
				return
			}
			// Carry-rippler: the borrow walks through the unset bits of mask.
			sub = (sub - mask) & mask
			if sub == 0 {
				return
			}
		}
	}
}

// IndexToOccupancy scatters the low bits of index into the set squares of
// mask, lowest square first.
func IndexToOccupancy(index int, mask board.Bitboard) board.Bitboard {
	var occ board.Bitboard
	for i := 0; mask != 0; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= board.SquareBB(sq)
		}
	}
	return occ
}
