package magic

import "github.com/pml76/Kangaroo/internal/board"

// BlockerMask returns the relevant occupancy mask for a slider on sq: every
// square along its rays except the last square of each ray, whose occupancy
// never changes the attack set.
func BlockerMask(sq board.Square, kind Slider) board.Bitboard {
	var mask board.Bitboard
	for _, d := range kind.Directions() {
		for s := d.Step(board.SquareBB(sq)); d.Step(s) != 0; s = d.Step(s) {
			mask |= s
		}
	}
	return mask
}

// IndexBits is the hash width for sq, i.e. the popcount of its blocker mask.
func IndexBits(sq board.Square, kind Slider) int {
	return BlockerMask(sq, kind).PopCount()
}

// TableSize returns the number of attack entries needed to hold every
// square's table for the slider, one 1<<IndexBits block per square.
func TableSize(kind Slider) int {
	total := 0
	for sq := range board.AllSquares() {
		total += 1 << IndexBits(sq, kind)
	}
	return total
}
