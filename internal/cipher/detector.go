package cipher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/RowanDark/cipherkit/internal/alphabet"
	"github.com/RowanDark/cipherkit/internal/caesar"
	"github.com/RowanDark/cipherkit/internal/frequency"
)

const (
	// minConfidence drops hypotheses too weak to report.
	minConfidence = 0.3
	// minICLetters is the shortest text whose index of coincidence is
	// considered meaningful.
	minICLetters = 40
)

// ClassicalDetector tells English plaintext, Caesar ciphertext and
// polyalphabetic (Vigenère-style) ciphertext apart using letter statistics.
type ClassicalDetector struct{}

var _ Detector = (*ClassicalDetector)(nil)

// NewClassicalDetector creates a new classical detector
func NewClassicalDetector() *ClassicalDetector {
	return &ClassicalDetector{}
}

// Detect scores input against each supported hypothesis and returns those
// above the confidence floor, most confident first.
func (d *ClassicalDetector) Detect(ctx context.Context, input []byte) ([]DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := alphabet.Normalize(string(input))
	if len(text) == 0 {
		return nil, errors.New("input contains no letters")
	}

	ranked := caesar.Rank(string(input))
	poly := polyalphabeticLikelihood(text)

	results := []DetectionResult{d.monoalphabetic(ranked, poly)}
	if len(text) >= minICLetters {
		results = append(results, d.polyalphabetic(text, poly))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	filtered := []DetectionResult{}
	for _, r := range results {
		if r.Confidence >= minConfidence {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// SupportedEncodings returns a list of encodings this detector can identify
func (d *ClassicalDetector) SupportedEncodings() []string {
	return []string{"plaintext", "caesar", "vigenere"}
}

// monoalphabetic reports the best Caesar shift. Confidence grows with the gap
// between the best and the runner-up score and shrinks as the letter
// statistics look polyalphabetic.
func (d *ClassicalDetector) monoalphabetic(ranked []caesar.Result, poly float64) DetectionResult {
	best, runnerUp := ranked[0], ranked[1]
	confidence := clamp01(1 - best.Score/runnerUp.Score)
	confidence *= 1 - poly

	if best.Shift == 0 {
		return DetectionResult{
			Encoding:   "plaintext",
			Confidence: confidence,
			Reasoning:  fmt.Sprintf("Unshifted text is the most English-like candidate (chi-squared %.3f, next %.3f)", best.Score, runnerUp.Score),
			Operation:  "normalize",
		}
	}
	return DetectionResult{
		Encoding:   "caesar",
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("Caesar shift %d gives chi-squared %.3f against %.3f for the next candidate", best.Key, best.Score, runnerUp.Score),
		Operation:  "caesar_decrypt",
		Params:     map[string]interface{}{"shift": best.Key},
	}
}

func (d *ClassicalDetector) polyalphabetic(text alphabet.Text, poly float64) DetectionResult {
	ic := frequency.IndexOfCoincidence(text)
	return DetectionResult{
		Encoding:   "vigenere",
		Confidence: 0.9 * poly,
		Reasoning: fmt.Sprintf("Index of coincidence %.4f is closer to random letters (%.4f) than to English (%.4f)",
			ic, frequency.RandomIC, frequency.EnglishIC),
		Operation: "vigenere_decrypt",
	}
}

// polyalphabeticLikelihood places the index of coincidence of text on the
// scale from English (0) to uniformly random letters (1). Short texts are
// too noisy and always return 0.
func polyalphabeticLikelihood(text alphabet.Text) float64 {
	if len(text) < minICLetters {
		return 0
	}
	ic := frequency.IndexOfCoincidence(text)
	return clamp01((frequency.EnglishIC - ic) / (frequency.EnglishIC - frequency.RandomIC))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// DecodeResult represents the result of a decode attempt
type DecodeResult struct {
	Detection DetectionResult `json:"detection"`
	Decoded   []byte          `json:"decoded"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
}

// DecodeAll runs the suggested operation of every detection. Detections whose
// operation cannot run without more input (a Vigenère keyword) are reported
// with Success false.
func DecodeAll(ctx context.Context, input []byte) ([]DecodeResult, error) {
	detections, err := NewClassicalDetector().Detect(ctx, input)
	if err != nil {
		return nil, err
	}

	results := []DecodeResult{}
	for _, detection := range detections {
		op, exists := GetOperation(detection.Operation)
		if !exists {
			continue
		}

		decoded, err := op.Execute(ctx, input, detection.Params)
		if err != nil {
			results = append(results, DecodeResult{Detection: detection, Error: err.Error()})
			continue
		}

		results = append(results, DecodeResult{
			Detection: detection,
			Decoded:   decoded,
			Success:   true,
		})
	}

	return results, nil
}
