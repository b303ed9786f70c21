package caesar

import (
	"cmp"
	"context"
	"slices"

	"github.com/sourcegraph/conc/pool"

	"github.com/RowanDark/cipherkit/internal/alphabet"
	"github.com/RowanDark/cipherkit/internal/frequency"
)

// Result describes one shift hypothesis for a ciphertext.
type Result struct {
	// Shift is the forward shift applied to the ciphertext to obtain Plaintext.
	Shift int `json:"shift"`
	// Key is the encryption shift the hypothesis assumes, (26 - Shift) mod 26.
	Key       int     `json:"key"`
	Score     float64 `json:"score"`
	Plaintext string  `json:"plaintext"`
}

func candidates(text alphabet.Text) []Result {
	results := make([]Result, alphabet.Size)
	for shift := range alphabet.Size {
		shifted := text.Shift(shift)
		results[shift] = Result{
			Shift:     shift,
			Key:       int(alphabet.Mod(alphabet.Size - shift)),
			Score:     frequency.EnglishScore(shifted),
			Plaintext: shifted.String(),
		}
	}
	return results
}

// Solve returns the most English-looking of the 26 shifts of ciphertext.
func Solve(ciphertext string) string {
	return Crack(ciphertext).Plaintext
}

// Crack is Solve with the winning shift and score attached. Shifts are tried
// in ascending order and a later shift only wins with a strictly lower score,
// so ties go to the smallest shift. Ciphertext without letters yields shift 0
// and an empty plaintext.
func Crack(ciphertext string) Result {
	all := candidates(alphabet.Normalize(ciphertext))
	best := all[0]
	for _, r := range all[1:] {
		if r.Score < best.Score {
			best = r
		}
	}
	return best
}

// Rank returns every shift of ciphertext ordered from most to least
// English-like. Equal scores keep ascending shift order.
func Rank(ciphertext string) []Result {
	all := candidates(alphabet.Normalize(ciphertext))
	slices.SortStableFunc(all, func(a, b Result) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return all
}

// CrackAll cracks each ciphertext using up to workers goroutines. Results are
// returned in input order.
func CrackAll(ctx context.Context, ciphertexts []string, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(ciphertexts))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	for i, ct := range ciphertexts {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Crack(ct)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
