package magic

import (
	"testing"

	"github.com/pml76/Kangaroo/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupanciesComplete(t *testing.T) {
	for _, kind := range Sliders {
		for sq := range board.AllSquares() {
			mask := BlockerMask(sq, kind)
			seen := make(map[board.Bitboard]struct{}, 1<<mask.PopCount())
			for occ := range Occupancies(mask) {
				require.True(t, occ.SubsetOf(mask), "%s %s: %s not a subset", kind, sq, occ.Hex())
				_, dup := seen[occ]
				require.False(t, dup, "%s %s: %s yielded twice", kind, sq, occ.Hex())
				seen[occ] = struct{}{}
			}
			require.Len(t, seen, 1<<mask.PopCount(), "%s %s", kind, sq)
		}
	}
}

func TestOccupanciesEmptyMask(t *testing.T) {
	var got []board.Bitboard
	for occ := range Occupancies(board.Empty) {
		got = append(got, occ)
	}
	assert.Equal(t, []board.Bitboard{board.Empty}, got)
}

func TestOccupanciesRestartable(t *testing.T) {
	mask := BlockerMask(board.D4, Bishop)
	seq := Occupancies(mask)

	first := 0
	for range seq {
		first++
		if first == 3 {
			break
		}
	}
	assert.Equal(t, 3, first)

	total := 0
	for range seq {
		total++
	}
	assert.Equal(t, 1<<9, total)
}

func TestIndexToOccupancyMatchesEnumeration(t *testing.T) {
	mask := BlockerMask(board.A1, Rook)
	n := 1 << mask.PopCount()

	fromIndex := make(map[board.Bitboard]bool, n)
	for i := 0; i < n; i++ {
		fromIndex[IndexToOccupancy(i, mask)] = true
	}
	require.Len(t, fromIndex, n)

	for occ := range Occupancies(mask) {
		assert.True(t, fromIndex[occ], "missing %s", occ.Hex())
	}
	assert.Equal(t, board.Empty, IndexToOccupancy(0, mask))
	assert.Equal(t, mask, IndexToOccupancy(n-1, mask))
	assert.Equal(t, board.SquareBB(mask.LSB()), IndexToOccupancy(1, mask))
}
