package magic

import (
	"math/bits"

	"github.com/pml76/Kangaroo/internal/board"
	"golang.org/x/exp/rand"
)

const highByte = 0xFF00000000000000

// MaxDraws is the largest Heuristic.Draws a Config accepts. Beyond it
// candidates are almost always zero.
const MaxDraws = 16

// Heuristic tunes which random multipliers are worth a full collision test.
// It has no bearing on correctness: any accepted magic is checked against
// every occupancy.
type Heuristic struct {
	// Draws is how many random words are ANDed into one candidate. More
	// draws give sparser candidates.
	Draws int `json:"draws"`
	// MinHighBits is the minimum popcount of the top byte of mask*candidate.
	MinHighBits int `json:"min_high_bits"`
}

// DefaultHeuristic ANDs three draws and asks for six high bits.
func DefaultHeuristic() Heuristic {
	return Heuristic{Draws: 3, MinHighBits: 6}
}

// Accepts reports whether candidate spreads mask far enough into the top
// byte of the product to be worth validating.
func (h Heuristic) Accepts(mask board.Bitboard, candidate uint64) bool {
	return bits.OnesCount64((uint64(mask)*candidate)&highByte) >= h.MinHighBits
}

// Generator produces magic candidates from its own seeded random stream.
// A Generator is not safe for concurrent use; give each worker its own.
type Generator struct {
	rng       *rand.Rand
	heuristic Heuristic
	drawn     uint64
}

// NewGenerator returns a generator whose stream is fully determined by seed.
func NewGenerator(seed uint64, h Heuristic) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		heuristic: h,
	}
}

// sparse ANDs together Draws random words.
func (g *Generator) sparse() uint64 {
	x := g.rng.Uint64()
	for i := 1; i < g.heuristic.Draws; i++ {
		x &= g.rng.Uint64()
	}
	return x
}

// Next draws one raw multiplier and reports whether it passes the heuristic
// filter for mask.
func (g *Generator) Next(mask board.Bitboard) (uint64, bool) {
	c := g.sparse()
	g.drawn++
	return c, g.heuristic.Accepts(mask, c)
}

// Candidate draws until a multiplier passes the heuristic filter for mask.
// It does not return if the filter can never pass; bounded callers use Next.
func (g *Generator) Candidate(mask board.Bitboard) uint64 {
	for {
		if c, ok := g.Next(mask); ok {
			return c
		}
	}
}

// Drawn returns the number of raw candidates drawn so far, filtered or not.
func (g *Generator) Drawn() uint64 {
	return g.drawn
}

// DeriveSeed mixes a base seed with a (kind, square) pair so each search gets
// an independent, reproducible stream (splitmix64 finalizer).
func DeriveSeed(seed uint64, kind Slider, sq board.Square) uint64 {
	z := seed + 0x9E3779B97F4A7C15*uint64(int(kind)*board.NumSquares+int(sq)+1)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
