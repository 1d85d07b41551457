// Package magic finds magic multipliers for rook and bishop attacks and
// builds the hashed attack tables they index.
//
// For every square and slider the search enumerates each occupancy of the
// relevant blocker mask, computes its true attack set by ray casting, and
// draws random candidates until one maps every occupancy into a table of
// 1<<popcount(mask) entries without a harmful collision.
package magic

import (
	"fmt"
	"strings"

	"github.com/pml76/Kangaroo/internal/board"
)

// Slider is a sliding piece kind.
type Slider uint8

const (
	Rook Slider = iota
	Bishop
)

// NumSliders is the number of slider kinds.
const NumSliders = 2

// Sliders lists every slider kind in table order.
var Sliders = [NumSliders]Slider{Rook, Bishop}

// Direction is one of the eight ray directions.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var (
	rookDirections   = [4]Direction{North, South, East, West}
	bishopDirections = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
)

// Directions returns the ray directions the slider moves along.
func (s Slider) Directions() [4]Direction {
	if s == Bishop {
		return bishopDirections
	}
	return rookDirections
}

func (s Slider) String() string {
	switch s {
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	}
	return fmt.Sprintf("Slider(%d)", uint8(s))
}

// ParseSlider accepts "rook"/"r" and "bishop"/"b" in any case.
func ParseSlider(s string) (Slider, error) {
	switch strings.ToLower(s) {
	case "rook", "r":
		return Rook, nil
	case "bishop", "b":
		return Bishop, nil
	}
	return 0, fmt.Errorf("unknown slider %q", s)
}

// Step moves every bit of b one square in direction d. Bits that would
// leave the board are dropped.
func (d Direction) Step(b board.Bitboard) board.Bitboard {
	switch d {
	case North:
		return b.North()
	case South:
		return b.South()
	case East:
		return b.East()
	case West:
		return b.West()
	case NorthEast:
		return b.NorthEast()
	case NorthWest:
		return b.NorthWest()
	case SouthEast:
		return b.SouthEast()
	case SouthWest:
		return b.SouthWest()
	}
	return board.Empty
}

func (d Direction) String() string {
	return [...]string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}[d]
}
