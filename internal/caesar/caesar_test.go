package caesar

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/cipherkit/internal/alphabet"
)

var verses = []string{
	"I met a traveller from an antique land",
	"Who said, two vast and trunkless legs of stone ",
	"Stand in the desert. Near them, on the sand,",
	"The quick brown fox jumps over the lazy dog",
}

func TestEncrypt(t *testing.T) {
	assert.Equal(t, "khoorzruog", Encrypt("hello world", 3))
	assert.Equal(t, "gdkkn", Encrypt("Hello", -1))
	assert.Equal(t, "hello", Encrypt("hello", 26))
	assert.Equal(t, "", Encrypt("", 5))
	assert.Equal(t, "", Encrypt("12 34!", 5))
}

func TestDecrypt(t *testing.T) {
	assert.Equal(t, "helloworld", Decrypt("khoorzruog", 3))
	assert.Equal(t, "hello", Decrypt("hello", 0))
	assert.Equal(t, Encrypt("abc", 23), Decrypt("abc", 3))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, text := range verses {
		want := alphabet.Normalize(text).String()
		for shift := -30; shift <= 30; shift++ {
			got := Decrypt(Encrypt(text, shift), shift)
			require.Equal(t, want, got, "shift %d text %q", shift, text)
		}
	}
}

func TestSolve(t *testing.T) {
	for _, text := range verses {
		want := alphabet.Normalize(text).String()
		for _, shift := range []int{1, 3, 7, 13, 25} {
			assert.Equal(t, want, Solve(Encrypt(text, shift)), "shift %d text %q", shift, text)
		}
	}
}

func TestSolveKnownAnswers(t *testing.T) {
	assert.Equal(t, "thequickbrownfoxjumpsoverthelazydog",
		Solve(Encrypt("The quick brown fox jumps over the lazy dog", 3)))
	assert.Equal(t, "imetatravellerfromanantiqueland",
		Solve(Encrypt("I met a traveller from an antique land", 3)))
}

func TestSolveEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "1984!"} {
		assert.Equal(t, "", Solve(in))

		r := Crack(in)
		assert.Equal(t, 0, r.Shift)
		assert.Equal(t, 0, r.Key)
		assert.True(t, math.IsInf(r.Score, 1), "expected +Inf score, got %v", r.Score)
	}
}

func TestCrackReportsKey(t *testing.T) {
	r := Crack(Encrypt("Stand in the desert. Near them, on the sand,", 3))
	assert.Equal(t, 23, r.Shift)
	assert.Equal(t, 3, r.Key)
	assert.Equal(t, "standinthedesertnearthemonthesand", r.Plaintext)

	plain := Crack("Stand in the desert")
	assert.Equal(t, 0, plain.Shift)
	assert.Equal(t, 0, plain.Key)
}

func TestCrackTieBreaksOnLowestShift(t *testing.T) {
	// every letter once: all 26 shifts have the same letter distribution
	r := Crack("abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t, 0, r.Shift)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", r.Plaintext)
}

func TestRank(t *testing.T) {
	ranked := Rank(Encrypt("I met a traveller from an antique land", 3))
	require.Len(t, ranked, alphabet.Size)
	assert.Equal(t, "imetatravellerfromanantiqueland", ranked[0].Plaintext)
	assert.Equal(t, 3, ranked[0].Key)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}

	seen := make(map[int]bool)
	for _, r := range ranked {
		seen[r.Shift] = true
	}
	assert.Len(t, seen, alphabet.Size)
}

func TestRankTiesKeepShiftOrder(t *testing.T) {
	ranked := Rank("abcdefghijklmnopqrstuvwxyz")
	for i, r := range ranked {
		assert.Equal(t, i, r.Shift)
	}

	empty := Rank("")
	for i, r := range empty {
		assert.Equal(t, i, r.Shift)
		assert.Equal(t, "", r.Plaintext)
	}
}

func TestCrackAll(t *testing.T) {
	ciphertexts := make([]string, len(verses))
	for i, v := range verses {
		ciphertexts[i] = Encrypt(v, i+5)
	}
	ciphertexts = append(ciphertexts, "")

	results, err := CrackAll(context.Background(), ciphertexts, 3)
	require.NoError(t, err)
	require.Len(t, results, len(ciphertexts))

	for i, v := range verses {
		assert.Equal(t, alphabet.Normalize(v).String(), results[i].Plaintext)
		assert.Equal(t, i+5, results[i].Key)
	}
	assert.Equal(t, "", results[len(verses)].Plaintext)
}

func TestCrackAllMatchesSequential(t *testing.T) {
	results, err := CrackAll(context.Background(), verses, 0)
	require.NoError(t, err)
	for i, v := range verses {
		assert.Equal(t, Crack(v), results[i])
	}
}

func TestCrackAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CrackAll(ctx, verses, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
