// Package frequency scores text against the letter distribution of English.
package frequency

import (
	"math"

	"github.com/RowanDark/cipherkit/internal/alphabet"
)

// english holds relative letter frequencies of English prose, a through z.
var english = alphabet.Distribution{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // a-g
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // h-n
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // o-u
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074, // v-z
}

const (
	// EnglishIC is the index of coincidence of typical English text.
	EnglishIC = 0.0667
	// RandomIC is the index of coincidence of uniformly random letters.
	RandomIC = 1.0 / alphabet.Size
)

// English returns a copy of the reference English letter distribution.
func English() alphabet.Distribution {
	return english
}

// ChiSquared computes the sum of (observed-expected)^2/expected over matching
// positions. Every expected value must be non-zero and expected must be at
// least as long as observed.
func ChiSquared(observed, expected []float64) float64 {
	var sum float64
	for i, o := range observed {
		diff := o - expected[i]
		sum += diff * diff / expected[i]
	}
	return sum
}

// EnglishScore rates how English-like text is; lower is better. Text without
// letters scores +Inf so that it never beats a real candidate.
func EnglishScore(text alphabet.Text) float64 {
	if len(text) == 0 {
		return math.Inf(1)
	}
	observed := text.Frequencies()
	return ChiSquared(observed[:], english[:])
}

// IndexOfCoincidence returns the probability that two letters drawn from text
// without replacement are equal. Texts shorter than two letters return 0.
func IndexOfCoincidence(text alphabet.Text) float64 {
	n := len(text)
	if n < 2 {
		return 0
	}
	var pairs int
	for _, c := range text.Counts() {
		pairs += c * (c - 1)
	}
	return float64(pairs) / float64(n*(n-1))
}
