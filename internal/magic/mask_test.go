package magic

import (
	"testing"

	"github.com/pml76/Kangaroo/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockerMaskKnownSquares(t *testing.T) {
	tests := []struct {
		name string
		sq   board.Square
		kind Slider
		want board.Bitboard
	}{
		{
			name: "rook a1",
			sq:   board.A1,
			kind: Rook,
			want: board.BitboardOf(board.A2, board.A3, board.A4, board.A5, board.A6, board.A7,
				board.B1, board.C1, board.D1, board.E1, board.F1, board.G1),
		},
		{
			name: "rook d4",
			sq:   board.D4,
			kind: Rook,
			want: board.BitboardOf(board.D2, board.D3, board.D5, board.D6, board.D7,
				board.B4, board.C4, board.E4, board.F4, board.G4),
		},
		{
			name: "bishop a1",
			sq:   board.A1,
			kind: Bishop,
			want: board.BitboardOf(board.B2, board.C3, board.D4, board.E5, board.F6, board.G7),
		},
		{
			name: "bishop h8",
			sq:   board.H8,
			kind: Bishop,
			want: board.BitboardOf(board.G7, board.F6, board.E5, board.D4, board.C3, board.B2),
		},
		{
			name: "bishop e1",
			sq:   board.E1,
			kind: Bishop,
			want: board.BitboardOf(board.D2, board.C3, board.B4, board.F2, board.G3),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want.Hex(), BlockerMask(tc.sq, tc.kind).Hex())
		})
	}
}

func TestBlockerMaskClosedForm(t *testing.T) {
	for sq := range board.AllSquares() {
		f, r := sq.File(), sq.Rank()
		rook := (board.FileMask[f]&^(board.Rank1|board.Rank8) |
			board.RankMask[r]&^(board.FileA|board.FileH)) &^ board.SquareBB(sq)
		assert.Equal(t, rook.Hex(), BlockerMask(sq, Rook).Hex(), "rook %s", sq)

		bishop := SlowAttacks(sq, Bishop, board.Empty) &^ board.Edges
		assert.Equal(t, bishop.Hex(), BlockerMask(sq, Bishop).Hex(), "bishop %s", sq)
	}
}

func TestBlockerMaskExcludesRayEnds(t *testing.T) {
	for _, kind := range Sliders {
		for sq := range board.AllSquares() {
			mask := BlockerMask(sq, kind)
			require.False(t, mask.IsSet(sq), "%s mask on %s contains its own square", kind, sq)
			require.Equal(t, board.Empty, mask&^SlowAttacks(sq, kind, board.Empty),
				"%s mask on %s leaves the empty-board rays", kind, sq)

			// The ray end is exactly what separates the mask from the rays.
			for _, d := range kind.Directions() {
				var last board.Bitboard
				for s := d.Step(board.SquareBB(sq)); s != 0; s = d.Step(s) {
					last = s
				}
				require.Zero(t, mask&last, "%s mask on %s includes %s ray end", kind, sq, d)
			}
		}
	}
}

func TestIndexBitsRange(t *testing.T) {
	rookBits := map[int]int{}
	bishopBits := map[int]int{}
	for sq := range board.AllSquares() {
		rookBits[IndexBits(sq, Rook)]++
		bishopBits[IndexBits(sq, Bishop)]++
	}
	assert.Equal(t, map[int]int{10: 36, 11: 24, 12: 4}, rookBits)
	assert.Equal(t, map[int]int{5: 44, 6: 4, 7: 12, 9: 4}, bishopBits)
}

func TestTableSize(t *testing.T) {
	assert.Equal(t, 102400, TableSize(Rook))
	assert.Equal(t, 5248, TableSize(Bishop))
}

func TestParseSlider(t *testing.T) {
	for in, want := range map[string]Slider{"rook": Rook, "R": Rook, "Bishop": Bishop, "b": Bishop} {
		got, err := ParseSlider(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSlider("queen")
	assert.Error(t, err)
	assert.Equal(t, "rook", Rook.String())
	assert.Equal(t, "bishop", Bishop.String())
}
