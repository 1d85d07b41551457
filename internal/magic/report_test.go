package magic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pml76/Kangaroo/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() MagicSet {
	set := MagicSet{Seed: 9}
	for sq := range board.AllSquares() {
		set.Rook[sq] = 0x0080001020400080 + uint64(sq)
		set.Bishop[sq] = 0x0002020202020200 ^ uint64(sq)<<40
	}
	return set
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleSet(), FormatText))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+64+1+1+64)
	assert.Equal(t, "// rooks:", lines[0])
	assert.Equal(t, "/* magic number found for a1: */ 0x0080001020400080,", lines[1])
	assert.Equal(t, "/* magic number found for h8: */ 0x00800010204000bf,", lines[64])
	assert.Equal(t, "", lines[65])
	assert.Equal(t, "// bishops:", lines[66])
	assert.Equal(t, "/* magic number found for a1: */ 0x0002020202020200,", lines[67])
}

func TestWriteReportGo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleSet(), FormatGo))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "// Magic numbers generated with seed 9.\n"))
	assert.Contains(t, out, "var rookMagicNumbers = [64]uint64{\n\t0x0080001020400080, // a1\n")
	assert.Contains(t, out, "var bishopMagicNumbers = [64]uint64{\n")
	assert.Equal(t, 128, strings.Count(out, "\t0x"))
}

func TestWriteReportUnknownFormat(t *testing.T) {
	assert.Error(t, WriteReport(&bytes.Buffer{}, sampleSet(), Format("yaml")))
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
	f, err := ParseFormat("GO")
	require.NoError(t, err)
	assert.Equal(t, FormatGo, f)
}

func TestParseReportRoundTrip(t *testing.T) {
	want := sampleSet()
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, want, FormatText))

	got, err := ParseReport(&buf)
	require.NoError(t, err)
	want.Seed = 0 // the text layout carries magics only
	assert.Equal(t, want, got)
}

func TestParseReportAcceptsUnpadded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleSet(), FormatText))
	text := strings.Replace(buf.String(), "0x0080001020400080,", "0x80001020400080,", 1)

	got, err := ParseReport(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, uint64(0x80001020400080), got.Rook[board.A1])
}

func TestParseReportErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleSet(), FormatText))
	full := buf.String()

	tests := map[string]string{
		// c4 is square 26, so its rook magic ends in 9a.
		"missing square": strings.Replace(full, "/* magic number found for c4: */ 0x008000102040009a,\n", "", 1),
		"garbage line":   full + "hello\n",
		"no section":     "/* magic number found for a1: */ 0x1,\n",
		"duplicate":      full + "/* magic number found for a1: */ 0x1,\n",
		"empty":          "",
	}
	for name, input := range tests {
		_, err := ParseReport(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}
