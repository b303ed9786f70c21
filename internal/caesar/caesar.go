// Package caesar implements the Caesar shift cipher and a frequency-analysis
// solver that recovers the shift of English ciphertext.
package caesar

import "github.com/RowanDark/cipherkit/internal/alphabet"

// Encrypt normalizes text and shifts every letter forward by shift (mod 26).
// Case, spacing and punctuation are discarded.
func Encrypt(text string, shift int) string {
	return alphabet.Normalize(text).Shift(shift).String()
}

// Decrypt undoes Encrypt by applying the complementary shift.
func Decrypt(text string, shift int) string {
	return Encrypt(text, alphabet.Size-int(alphabet.Mod(shift)))
}
