// Package alphabet maps free-form text onto the 26-letter Latin alphabet used
// by the classical ciphers.
package alphabet

import "strings"

// Size is the number of letters in the alphabet.
const Size = 26

// Text is a sequence of letter indices, each in [0, Size).
// Values are never modified in place; transforms return a new Text.
type Text []uint8

// Distribution holds one relative frequency per letter.
type Distribution [Size]float64

// Normalize keeps the ASCII letters of raw, folds them to lower case and maps
// each to its zero-based position in the alphabet. Everything else is dropped.
func Normalize(raw string) Text {
	out := make(Text, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a')
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A')
		}
	}
	return out
}

// String renders the text as lowercase letters.
func (t Text) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, idx := range t {
		b.WriteByte('a' + idx%Size)
	}
	return b.String()
}

// Mod reduces n into [0, Size) using the Euclidean remainder, so negative
// shifts wrap backwards.
func Mod(n int) uint8 {
	r := n % Size
	if r < 0 {
		r += Size
	}
	return uint8(r)
}

// Shift moves every letter forward by n positions, wrapping around the alphabet.
func (t Text) Shift(n int) Text {
	k := Mod(n)
	out := make(Text, len(t))
	for i, idx := range t {
		out[i] = (idx + k) % Size
	}
	return out
}

// Counts returns the number of occurrences of each letter.
func (t Text) Counts() [Size]int {
	var counts [Size]int
	for _, idx := range t {
		counts[idx%Size]++
	}
	return counts
}

// Frequencies returns the relative frequency of each letter. An empty text
// yields the all-zero distribution.
func (t Text) Frequencies() Distribution {
	var dist Distribution
	if len(t) == 0 {
		return dist
	}
	total := float64(len(t))
	for i, count := range t.Counts() {
		dist[i] = float64(count) / total
	}
	return dist
}
