// Package vigenere implements the Vigenère cipher over normalized text.
//
// A keyword without letters leaves the text unchanged in both directions;
// HasKey lets callers tell that case apart.
package vigenere

import "github.com/RowanDark/cipherkit/internal/alphabet"

// Encrypt shifts each letter of text forward by the matching letter of the
// repeating keyword.
func Encrypt(text, keyword string) string {
	return apply(text, keyword, false)
}

// Decrypt reverses Encrypt for the same keyword.
func Decrypt(text, keyword string) string {
	return apply(text, keyword, true)
}

// HasKey reports whether keyword contains at least one letter.
func HasKey(keyword string) bool {
	return len(alphabet.Normalize(keyword)) > 0
}

func apply(text, keyword string, decrypt bool) string {
	t := alphabet.Normalize(text)
	key := alphabet.Normalize(keyword)
	if len(key) == 0 {
		return t.String()
	}
	out := make(alphabet.Text, len(t))
	for i, c := range t {
		k := key[i%len(key)]
		if decrypt {
			k = (alphabet.Size - k) % alphabet.Size
		}
		out[i] = (c + k) % alphabet.Size
	}
	return out.String()
}
