package cipher

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPipelineExecution(t *testing.T) {
	tests := []struct {
		name       string
		operations []OperationConfig
		input      string
		expected   string
	}{
		{
			name: "single operation",
			operations: []OperationConfig{
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 3}},
			},
			input:    "hello world",
			expected: "khoorzruog",
		},
		{
			name: "double shift adds up",
			operations: []OperationConfig{
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 3}},
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 4}},
			},
			input:    "hello",
			expected: "olssv",
		},
		{
			name: "encrypt then decrypt",
			operations: []OperationConfig{
				{Name: "vigenere_encrypt", Parameters: map[string]interface{}{"keyword": "key"}},
				{Name: "vigenere_decrypt", Parameters: map[string]interface{}{"keyword": "key"}},
			},
			input:    "Hello World",
			expected: "helloworld",
		},
		{
			name: "encrypt then solve",
			operations: []OperationConfig{
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 11}},
				{Name: "caesar_solve"},
			},
			input:    "Who said, two vast and trunkless legs of stone",
			expected: "whosaidtwovastandtrunklesslegsofstone",
		},
		{
			name:       "empty pipeline is identity",
			operations: nil,
			input:      "As Is",
			expected:   "As Is",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &Pipeline{Operations: tt.operations}

			result, err := pipeline.Execute(ctx, []byte(tt.input))
			if err != nil {
				t.Fatalf("pipeline execution failed: %v", err)
			}

			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(result))
			}
		})
	}
}

func TestPipelineReversibility(t *testing.T) {
	tests := []struct {
		name       string
		operations []OperationConfig
		input      string
	}{
		{
			name: "single reversible operation",
			operations: []OperationConfig{
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 7}},
			},
			input: "The quick brown fox jumps over the lazy dog",
		},
		{
			name: "mixed chain",
			operations: []OperationConfig{
				{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 3}},
				{Name: "vigenere_encrypt", Parameters: map[string]interface{}{"keyword": "lemon"}},
				{Name: "rot13"},
			},
			input: "Attack at dawn!",
		},
		{
			name: "decrypt first",
			operations: []OperationConfig{
				{Name: "vigenere_decrypt", Parameters: map[string]interface{}{"keyword": "secret"}},
				{Name: "caesar_decrypt", Parameters: map[string]interface{}{"shift": -5}},
			},
			input: "Stand in the desert. Near them, on the sand,",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &Pipeline{
				Operations: tt.operations,
				Reversible: true,
			}

			encoded, err := pipeline.Execute(ctx, []byte(tt.input))
			if err != nil {
				t.Fatalf("forward execution failed: %v", err)
			}

			reversed, err := pipeline.Reverse()
			if err != nil {
				t.Fatalf("reverse failed: %v", err)
			}

			decoded, err := reversed.Execute(ctx, encoded)
			if err != nil {
				t.Fatalf("reverse execution failed: %v", err)
			}

			want := execute(t, "normalize", tt.input, nil)
			if string(decoded) != want {
				t.Errorf("round trip: expected %q, got %q", want, string(decoded))
			}
		})
	}
}

func TestPipelineReverseOrder(t *testing.T) {
	pipeline := &Pipeline{
		Operations: []OperationConfig{
			{Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 3}},
			{Name: "vigenere_encrypt", Parameters: map[string]interface{}{"keyword": "lemon"}},
		},
		Reversible: true,
	}

	reversed, err := pipeline.Reverse()
	if err != nil {
		t.Fatalf("reverse failed: %v", err)
	}

	if reversed.Operations[0].Name != "vigenere_decrypt" {
		t.Errorf("expected first step vigenere_decrypt, got %s", reversed.Operations[0].Name)
	}
	if reversed.Operations[0].Parameters["keyword"] != "lemon" {
		t.Errorf("expected keyword to carry over, got %v", reversed.Operations[0].Parameters)
	}
	if reversed.Operations[1].Name != "caesar_decrypt" {
		t.Errorf("expected second step caesar_decrypt, got %s", reversed.Operations[1].Name)
	}
	if got := strings.Join(reversed.StepNames(), ","); got != "vigenere_decrypt,caesar_decrypt" {
		t.Errorf("unexpected step names %s", got)
	}
}

func TestPipelineErrors(t *testing.T) {
	ctx := context.Background()

	unknown := &Pipeline{Operations: []OperationConfig{{Name: "enigma"}}}
	if _, err := unknown.Execute(ctx, []byte("x")); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}

	badParam := &Pipeline{Operations: []OperationConfig{{Name: "caesar_encrypt"}}}
	if _, err := badParam.Execute(ctx, []byte("x")); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	notFlagged := &Pipeline{Operations: []OperationConfig{{Name: "rot13"}}}
	if _, err := notFlagged.Reverse(); !errors.Is(err, ErrNotReversible) {
		t.Errorf("expected ErrNotReversible for non-reversible pipeline, got %v", err)
	}

	withSolve := &Pipeline{Operations: []OperationConfig{{Name: "caesar_solve"}}, Reversible: true}
	if _, err := withSolve.Reverse(); !errors.Is(err, ErrNotReversible) {
		t.Errorf("expected ErrNotReversible for caesar_solve, got %v", err)
	}
}
