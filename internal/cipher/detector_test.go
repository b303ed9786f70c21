package cipher

import (
	"context"
	"errors"
	"testing"

	"github.com/RowanDark/cipherkit/internal/alphabet"
	"github.com/RowanDark/cipherkit/internal/caesar"
	"github.com/RowanDark/cipherkit/internal/vigenere"
)

const dickens = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity"

func TestDetectPlaintext(t *testing.T) {
	results, err := NewClassicalDetector().Detect(context.Background(), []byte(dickens))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a single hypothesis, got %+v", results)
	}
	r := results[0]
	if r.Encoding != "plaintext" {
		t.Errorf("expected plaintext, got %s", r.Encoding)
	}
	if r.Confidence < 0.8 {
		t.Errorf("expected confidence >= 0.8, got %.2f", r.Confidence)
	}
	if r.Operation != "normalize" {
		t.Errorf("expected normalize operation, got %s", r.Operation)
	}
}

func TestDetectCaesar(t *testing.T) {
	ciphertext := caesar.Encrypt(dickens, 7)

	results, err := NewClassicalDetector().Detect(context.Background(), []byte(ciphertext))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one hypothesis")
	}
	r := results[0]
	if r.Encoding != "caesar" {
		t.Fatalf("expected caesar, got %s", r.Encoding)
	}
	if r.Confidence < 0.8 {
		t.Errorf("expected confidence >= 0.8, got %.2f", r.Confidence)
	}
	if r.Operation != "caesar_decrypt" || r.Params["shift"] != 7 {
		t.Errorf("expected caesar_decrypt with shift 7, got %s %v", r.Operation, r.Params)
	}
	t.Logf("Detected %s with confidence %.2f: %s", r.Encoding, r.Confidence, r.Reasoning)
}

func TestDetectVigenere(t *testing.T) {
	ciphertext := vigenere.Encrypt(dickens, "lemon")

	results, err := NewClassicalDetector().Detect(context.Background(), []byte(ciphertext))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the polyalphabetic hypothesis, got %+v", results)
	}
	if results[0].Encoding != "vigenere" {
		t.Errorf("expected vigenere, got %s", results[0].Encoding)
	}
	if results[0].Confidence < 0.7 {
		t.Errorf("expected confidence >= 0.7, got %.2f", results[0].Confidence)
	}
}

func TestDetectShortTextSkipsIndexOfCoincidence(t *testing.T) {
	results, err := NewClassicalDetector().Detect(context.Background(), []byte("Who said, two vast and trunkless legs of stone"))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	for _, r := range results {
		if r.Encoding == "vigenere" {
			t.Errorf("short text should not produce a vigenere hypothesis: %+v", r)
		}
	}
}

func TestDetectErrors(t *testing.T) {
	detector := NewClassicalDetector()

	for _, input := range []string{"", "1234 !!"} {
		if _, err := detector.Detect(context.Background(), []byte(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := detector.Detect(ctx, []byte(dickens)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSupportedEncodings(t *testing.T) {
	var detector Detector = NewClassicalDetector()
	encodings := detector.SupportedEncodings()
	for _, r := range []string{"plaintext", "caesar", "vigenere"} {
		found := false
		for _, e := range encodings {
			if e == r {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s to be supported", r)
		}
	}
}

func TestDecodeAll(t *testing.T) {
	ctx := context.Background()
	want := alphabet.Normalize(dickens).String()

	results, err := DecodeAll(ctx, []byte(caesar.Encrypt(dickens, 19)))
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(results) == 0 || !results[0].Success {
		t.Fatalf("expected a successful decode, got %+v", results)
	}
	if string(results[0].Decoded) != want {
		t.Errorf("expected %q, got %q", want, string(results[0].Decoded))
	}

	results, err = DecodeAll(ctx, []byte(vigenere.Encrypt(dickens, "lemon")))
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(results) != 1 || results[0].Success || results[0].Error == "" {
		t.Errorf("vigenere decode needs a keyword and should fail, got %+v", results)
	}
}
