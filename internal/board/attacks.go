package board

import "fmt"

// Pre-computed attack tables for the leaper pieces.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
)

var (
	knightOffsets = [8][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [8][2]int{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	if err := VerifyLeaperTables(); err != nil {
		panic(err)
	}
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		knightAttacks[sq] = knightAttacksFor(SquareBB(sq))
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

// knightAttacksFor is the closed-form knight pattern for every set bit of bb.
func knightAttacksFor(bb Bitboard) Bitboard {
	attacks := Empty

	// Up or down 2, left/right 1
	attacks |= (bb << 17) & NotFileA
	attacks |= (bb << 15) & NotFileH
	attacks |= (bb >> 17) & NotFileH
	attacks |= (bb >> 15) & NotFileA

	// Up or down 1, left/right 2
	attacks |= (bb << 10) & NotFileAB
	attacks |= (bb << 6) & NotFileGH
	attacks |= (bb >> 10) & NotFileGH
	attacks |= (bb >> 6) & NotFileAB

	return attacks
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// offsetAttacks builds a leaper pattern by walking explicit (file, rank)
// offsets with bounds checks. It shares no code with the shift-based tables.
func offsetAttacks(sq Square, offsets [8][2]int) Bitboard {
	var attacks Bitboard
	for _, off := range offsets {
		if to, ok := sq.Offset(off[0], off[1]); ok {
			attacks |= SquareBB(to)
		}
	}
	return attacks
}

// VerifyLeaperTables checks the knight and king tables against a brute-force
// offset walk for every square.
func VerifyLeaperTables() error {
	for sq := range AllSquares() {
		if want := offsetAttacks(sq, knightOffsets); knightAttacks[sq] != want {
			return fmt.Errorf("knight attacks on %s: got %s, want %s", sq, knightAttacks[sq].Hex(), want.Hex())
		}
		if want := offsetAttacks(sq, kingOffsets); kingAttacks[sq] != want {
			return fmt.Errorf("king attacks on %s: got %s, want %s", sq, kingAttacks[sq].Hex(), want.Hex())
		}
	}
	return nil
}
