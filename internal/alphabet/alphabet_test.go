package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed case and digits", "Hello123", "hello"},
		{"spaces and punctuation", "ABC def!", "abcdef"},
		{"empty", "", ""},
		{"no letters", "1234 !?-", ""},
		{"non-ascii letters dropped", "café naïve", "cafnave"},
		{"sentence", "The quick brown fox jumps over the lazy dog", "thequickbrownfoxjumpsoverthelazydog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input).String())
		})
	}
}

func TestNormalizeIndices(t *testing.T) {
	assert.Equal(t, Text{0, 1, 2}, Normalize("abc"))
	assert.Equal(t, Text{7, 4, 11, 11, 14}, Normalize("HeLLo"))
	assert.Empty(t, Normalize(""))

	for _, idx := range Normalize("Zebra crossing: 42 AZaz") {
		assert.Less(t, idx, uint8(Size))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"I met a traveller from an antique land",
		"\t\n 0xDEADBEEF ünïcödé",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once.String()), "input %q", in)
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "abc", Text{0, 1, 2}.String())
	assert.Equal(t, "hello", Text{7, 4, 11, 11, 14}.String())
	assert.Equal(t, "", Text{}.String())
	assert.Equal(t, "z", Text{25}.String())
}

func TestMod(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{0, 0},
		{3, 3},
		{26, 0},
		{27, 1},
		{-1, 25},
		{-26, 0},
		{-27, 25},
		{260, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mod(tt.in), "Mod(%d)", tt.in)
	}
}

func TestShift(t *testing.T) {
	text := Normalize("hello")
	assert.Equal(t, "ifmmp", text.Shift(1).String())
	assert.Equal(t, "jgnnq", text.Shift(2).String())
	assert.Equal(t, "hello", text.Shift(26).String())
	assert.Equal(t, "gdkkn", text.Shift(-1).String())
	assert.Equal(t, "ifmmp", text.Shift(27).String())
	assert.Equal(t, "", Normalize("").Shift(1).String())

	// the receiver is left untouched
	assert.Equal(t, "hello", text.String())
}

func TestCounts(t *testing.T) {
	var expected [Size]int
	expected[7] = 1
	expected[4] = 1
	expected[11] = 2
	expected[14] = 1
	assert.Equal(t, expected, Normalize("hello").Counts())
	assert.Equal(t, [Size]int{}, Normalize("").Counts())
}

func TestFrequencies(t *testing.T) {
	freqs := Normalize("hello").Frequencies()
	assert.InDelta(t, 0.2, freqs[7], 1e-10)
	assert.InDelta(t, 0.2, freqs[4], 1e-10)
	assert.InDelta(t, 0.4, freqs[11], 1e-10)
	assert.InDelta(t, 0.2, freqs[14], 1e-10)

	var sum float64
	for _, f := range freqs {
		sum += f
	}
	require.InDelta(t, 1.0, sum, 1e-10)

	for _, f := range Normalize("").Frequencies() {
		assert.Zero(t, f)
	}
}
