// Package cipher exposes the classical ciphers as named, composable
// operations for pipelines, recipes and automatic detection.
//
// # Operations
//
// Every transform is registered under a name at init time:
//
//	op, _ := cipher.GetOperation("caesar_encrypt")
//	out, _ := op.Execute(ctx, []byte("Hello, World!"), map[string]interface{}{"shift": 3})
//	// out: []byte("khoorzruog")
//
// Available operations:
//   - normalize - keep letters only, lowercased
//   - caesar_encrypt/caesar_decrypt - Caesar shift (param: shift)
//   - rot13 - Caesar shift 13, its own inverse
//   - caesar_solve - recover Caesar plaintext by frequency analysis (not reversible)
//   - vigenere_encrypt/vigenere_decrypt - Vigenère cipher (param: keyword)
//
// Every operation normalizes its input first, so outputs are always lowercase
// letters without spaces or punctuation.
//
// # Pipelines
//
//	pipeline := &cipher.Pipeline{
//	    Operations: []cipher.OperationConfig{
//	        {Name: "caesar_encrypt", Parameters: map[string]interface{}{"shift": 3}},
//	        {Name: "vigenere_encrypt", Parameters: map[string]interface{}{"keyword": "lemon"}},
//	    },
//	    Reversible: true,
//	}
//	ciphertext, _ := pipeline.Execute(ctx, []byte("attack at dawn"))
//	reversed, _ := pipeline.Reverse()
//	plaintext, _ := reversed.Execute(ctx, ciphertext) // "attackatdawn"
//
// # Recipes
//
// RecipeManager saves pipelines under a name, optionally as JSON files in a
// directory, and can run them forwards or backwards.
//
// # Detection
//
// ClassicalDetector ranks three hypotheses for a text: English plaintext,
// Caesar ciphertext (chi-squared against English letter frequencies) and
// polyalphabetic ciphertext (index of coincidence near that of random
// letters). It does not attempt to recover Vigenère keys.
//
// # Thread Safety
//
// The operation registry is safe for concurrent use and operations are
// stateless. RecipeManager uses internal locking.
package cipher
