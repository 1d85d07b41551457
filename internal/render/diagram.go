// Package render draws attack-set diagrams for inspecting generated tables.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/pml76/Kangaroo/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls diagram colours and size.
type Options struct {
	Size     int // Edge length of the PNG in pixels
	Light    string
	Dark     string
	Attacked string
	Blocker  string
	Origin   string
	Labels   bool // Draw file and rank labels on the PNG
}

// DefaultOptions returns a 400px board with labels.
func DefaultOptions() Options {
	return Options{
		Size:     400,
		Light:    "#f0d9b5",
		Dark:     "#b58863",
		Attacked: "#e05252",
		Blocker:  "#3a3a3a",
		Origin:   "#3c78d8",
		Labels:   true,
	}
}

// Diagram is one slider position to draw: the piece square, the occupancy
// it was looked up with, and the resulting attack set.
type Diagram struct {
	Origin   board.Square
	Occupied board.Bitboard
	Attacks  board.Bitboard
}

// SVG returns the diagram as an SVG document in an 8x8 unit coordinate
// space, rank 8 at the top.
func SVG(d Diagram, opts Options) string {
	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8" width="8" height="8">` + "\n")
	for sq := range board.AllSquares() {
		x := sq.File()
		y := 7 - sq.Rank()

		fill := opts.Light
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = opts.Dark
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="1" height="1" fill="%s"/>`+"\n", x, y, fill)

		// Markers are inset circles so the square colour stays visible.
		marker := ""
		switch {
		case sq == d.Origin:
			marker = opts.Origin
		case d.Attacks.IsSet(sq) && d.Occupied.IsSet(sq):
			marker = opts.Blocker
		case d.Attacks.IsSet(sq):
			marker = opts.Attacked
		case d.Occupied.IsSet(sq):
			marker = opts.Blocker
		}
		if marker != "" {
			fmt.Fprintf(&sb, `<circle cx="%d.5" cy="%d.5" r="0.3" fill="%s"/>`+"\n", x, y, marker)
		}
		if sq != d.Origin && d.Attacks.IsSet(sq) && d.Occupied.IsSet(sq) {
			fmt.Fprintf(&sb, `<circle cx="%d.5" cy="%d.5" r="0.15" fill="%s"/>`+"\n", x, y, opts.Attacked)
		}
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Rasterize renders the diagram to an RGBA image of opts.Size pixels.
func Rasterize(d Diagram, opts Options) (*image.RGBA, error) {
	if opts.Size < 8 {
		return nil, fmt.Errorf("diagram size %d too small", opts.Size)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(SVG(d, opts)))
	if err != nil {
		return nil, fmt.Errorf("parse diagram svg: %w", err)
	}

	size := opts.Size
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	if opts.Labels {
		drawLabels(rgba, size)
	}
	return rgba, nil
}

// drawLabels writes file letters along the bottom rank and rank digits down
// the a-file.
func drawLabels(dst *image.RGBA, size int) {
	cell := size / 8
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	for f := 0; f < 8; f++ {
		drawer.Dot = fixed.P(f*cell+cell-9, size-3)
		drawer.DrawString(string(rune('a' + f)))
	}
	for r := 0; r < 8; r++ {
		drawer.Dot = fixed.P(2, (7-r)*cell+face.Ascent+1)
		drawer.DrawString(string(rune('1' + r)))
	}
}

// WritePNG renders the diagram and encodes it as PNG to w.
func WritePNG(w io.Writer, d Diagram, opts Options) error {
	img, err := Rasterize(d, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
