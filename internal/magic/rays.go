package magic

import "github.com/pml76/Kangaroo/internal/board"

// SlowAttacks computes the attack set of a slider on sq by ray casting.
// Each ray includes the first occupied square it meets and stops there.
// It is the ground truth every magic table is checked against.
func SlowAttacks(sq board.Square, kind Slider, occupied board.Bitboard) board.Bitboard {
	var attacks board.Bitboard
	for _, d := range kind.Directions() {
		for s := d.Step(board.SquareBB(sq)); s != 0; s = d.Step(s) {
			attacks |= s
			if occupied&s != 0 {
				break
			}
		}
	}
	return attacks
}
