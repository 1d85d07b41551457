package magic

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pml76/Kangaroo/internal/board"
)

// MagicSet is the full set of 128 magic numbers, indexed by square.
type MagicSet struct {
	Seed   uint64                   `json:"seed"`
	Rook   [board.NumSquares]uint64 `json:"rook"`
	Bishop [board.NumSquares]uint64 `json:"bishop"`
}

// Get returns the magic for kind on sq.
func (s *MagicSet) Get(kind Slider, sq board.Square) uint64 {
	if kind == Bishop {
		return s.Bishop[sq]
	}
	return s.Rook[sq]
}

func (s *MagicSet) set(kind Slider, sq board.Square, magic uint64) {
	if kind == Bishop {
		s.Bishop[sq] = magic
		return
	}
	s.Rook[sq] = magic
}

// Format selects the report layout.
type Format string

const (
	// FormatText is one annotated hex literal per line, rooks then bishops.
	FormatText Format = "text"
	// FormatGo is a pair of Go array literals.
	FormatGo Format = "go"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatGo:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

var sectionNames = [NumSliders]string{Rook: "rooks", Bishop: "bishops"}

// WriteReport writes the magic numbers of set to w in the given format.
func WriteReport(w io.Writer, set MagicSet, format Format) error {
	bw := bufio.NewWriter(w)
	switch format {
	case FormatText:
		writeText(bw, &set)
	case FormatGo:
		writeGo(bw, &set)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	return bw.Flush()
}

func writeText(w *bufio.Writer, set *MagicSet) {
	for i, kind := range Sliders {
		if i > 0 {
			w.WriteString("\n")
		}
		fmt.Fprintf(w, "// %s:\n", sectionNames[kind])
		for sq := range board.AllSquares() {
			fmt.Fprintf(w, "/* magic number found for %s: */ 0x%016x,\n", sq, set.Get(kind, sq))
		}
	}
}

func writeGo(w *bufio.Writer, set *MagicSet) {
	fmt.Fprintf(w, "// Magic numbers generated with seed %d.\n", set.Seed)
	for _, kind := range Sliders {
		fmt.Fprintf(w, "\nvar %sMagicNumbers = [64]uint64{\n", kind)
		for sq := range board.AllSquares() {
			fmt.Fprintf(w, "\t0x%016X, // %s\n", set.Get(kind, sq), sq)
		}
		w.WriteString("}\n")
	}
}

var (
	sectionLine = regexp.MustCompile(`^//\s*(rooks|bishops):\s*$`)
	magicLine   = regexp.MustCompile(`^/\*\s*magic number found for ([a-hA-H][1-8]):\s*\*/\s*(0[xX][0-9a-fA-F]+)\s*,?\s*$`)
)

// ParseReport reads a text-format report back into a MagicSet. Every square
// of both sections must be present exactly once.
func ParseReport(r io.Reader) (MagicSet, error) {
	var (
		set     MagicSet
		seen    [NumSliders][board.NumSquares]bool
		current = -1
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if m := sectionLine.FindStringSubmatch(line); m != nil {
			current = int(Rook)
			if m[1] == "bishops" {
				current = int(Bishop)
			}
			continue
		}
		m := magicLine.FindStringSubmatch(line)
		if m == nil {
			return MagicSet{}, fmt.Errorf("line %d: unrecognized report line %q", lineNo, line)
		}
		if current < 0 {
			return MagicSet{}, fmt.Errorf("line %d: magic before any section header", lineNo)
		}
		sq, err := board.ParseSquare(m[1])
		if err != nil {
			return MagicSet{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		v, err := strconv.ParseUint(m[2][2:], 16, 64)
		if err != nil {
			return MagicSet{}, fmt.Errorf("line %d: bad magic %q: %w", lineNo, m[2], err)
		}
		kind := Slider(current)
		if seen[kind][sq] {
			return MagicSet{}, fmt.Errorf("line %d: duplicate %s magic for %s", lineNo, kind, sq)
		}
		seen[kind][sq] = true
		set.set(kind, sq, v)
	}
	if err := sc.Err(); err != nil {
		return MagicSet{}, err
	}

	for _, kind := range Sliders {
		for sq := range board.AllSquares() {
			if !seen[kind][sq] {
				return MagicSet{}, fmt.Errorf("report has no %s magic for %s", kind, sq)
			}
		}
	}
	return set, nil
}
