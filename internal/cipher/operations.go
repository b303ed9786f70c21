package cipher

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RowanDark/cipherkit/internal/alphabet"
	"github.com/RowanDark/cipherkit/internal/caesar"
	"github.com/RowanDark/cipherkit/internal/vigenere"
)

// NormalizeOp strips everything but letters and lowercases the rest
type NormalizeOp struct {
	BaseOperation
}

func (op *NormalizeOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(alphabet.Normalize(string(input)).String()), nil
}

// Caesar Operations

// CaesarEncryptOp shifts letters forward by the "shift" parameter
type CaesarEncryptOp struct {
	BaseOperation
}

func (op *CaesarEncryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shift, err := intParam(params, "shift")
	if err != nil {
		return nil, err
	}
	return []byte(caesar.Encrypt(string(input), shift)), nil
}

// CaesarDecryptOp shifts letters back by the "shift" parameter
type CaesarDecryptOp struct {
	BaseOperation
}

func (op *CaesarDecryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shift, err := intParam(params, "shift")
	if err != nil {
		return nil, err
	}
	return []byte(caesar.Decrypt(string(input), shift)), nil
}

// ROT13Op is the Caesar cipher with a fixed shift of 13, its own inverse
type ROT13Op struct {
	BaseOperation
}

func (op *ROT13Op) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(caesar.Encrypt(string(input), 13)), nil
}

// CaesarSolveOp recovers Caesar plaintext by letter-frequency analysis
type CaesarSolveOp struct {
	BaseOperation
}

func (op *CaesarSolveOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(caesar.Solve(string(input))), nil
}

// Vigenère Operations

// VigenereEncryptOp enciphers with the "keyword" parameter
type VigenereEncryptOp struct {
	BaseOperation
}

func (op *VigenereEncryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keyword, err := stringParam(params, "keyword")
	if err != nil {
		return nil, err
	}
	return []byte(vigenere.Encrypt(string(input), keyword)), nil
}

// VigenereDecryptOp deciphers with the "keyword" parameter
type VigenereDecryptOp struct {
	BaseOperation
}

func (op *VigenereDecryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keyword, err := stringParam(params, "keyword")
	if err != nil {
		return nil, err
	}
	return []byte(vigenere.Decrypt(string(input), keyword)), nil
}

// intParam reads an integer parameter. JSON numbers arrive as float64 and
// flag values as strings, so both are accepted when they hold an integer.
func intParam(params map[string]interface{}, name string) (int, error) {
	raw, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidParameter, name)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidParameter, name, v)
		}
		if math.Abs(v) >= math.MaxInt {
			return 0, fmt.Errorf("%w: %s is out of range, got %v", ErrInvalidParameter, name, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidParameter, name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidParameter, name, raw)
	}
}

// stringParam reads a string parameter. An empty string is a valid value.
func stringParam(params map[string]interface{}, name string) (string, error) {
	raw, ok := params[name]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidParameter, name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidParameter, name, raw)
	}
	return s, nil
}

func init() {
	normalize := &NormalizeOp{
		BaseOperation: BaseOperation{
			NameValue:        "normalize",
			TypeValue:        OperationTypeNormalize,
			DescriptionValue: "Keep letters only, lowercased",
		},
	}

	caesarEncrypt := &CaesarEncryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "caesar_encrypt",
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "Caesar cipher, shift letters forward (param: shift)",
		},
	}
	caesarDecrypt := &CaesarDecryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "caesar_decrypt",
			TypeValue:        OperationTypeDecrypt,
			DescriptionValue: "Caesar cipher, shift letters back (param: shift)",
		},
	}
	caesarEncrypt.ReverseOp = caesarDecrypt
	caesarDecrypt.ReverseOp = caesarEncrypt

	rot13 := &ROT13Op{
		BaseOperation: BaseOperation{
			NameValue:        "rot13",
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "Caesar cipher with shift 13",
		},
	}
	rot13.ReverseOp = rot13

	caesarSolve := &CaesarSolveOp{
		BaseOperation: BaseOperation{
			NameValue:        "caesar_solve",
			TypeValue:        OperationTypeAnalyze,
			DescriptionValue: "Recover Caesar plaintext by chi-squared frequency analysis",
		},
	}

	vigenereEncrypt := &VigenereEncryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "vigenere_encrypt",
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "Vigenère cipher, add repeating keyword (param: keyword)",
		},
	}
	vigenereDecrypt := &VigenereDecryptOp{
		BaseOperation: BaseOperation{
			NameValue:        "vigenere_decrypt",
			TypeValue:        OperationTypeDecrypt,
			DescriptionValue: "Vigenère cipher, subtract repeating keyword (param: keyword)",
		},
	}
	vigenereEncrypt.ReverseOp = vigenereDecrypt
	vigenereDecrypt.ReverseOp = vigenereEncrypt

	mustRegister(
		normalize,
		caesarEncrypt,
		caesarDecrypt,
		rot13,
		caesarSolve,
		vigenereEncrypt,
		vigenereDecrypt,
	)
}
