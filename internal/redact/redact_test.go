package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no secrets", "caesar shift=3", "caesar shift=3"},
		{"keyword assignment", "keyword=lemon", "keyword=[REDACTED_SECRET]"},
		{"quoted keyword", `keyword: "lemon"`, `keyword: "[REDACTED_SECRET]"`},
		{"passphrase in sentence", "used passphrase=attackatdawn for run", "used passphrase=[REDACTED_SECRET] for run"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestMapMasksSensitiveKeys(t *testing.T) {
	input := map[string]any{
		"keyword": "lemon",
		"shift":   3,
		"steps": []any{
			map[string]any{"name": "vigenere_encrypt", "keyword": "secret"},
		},
	}
	masked := Map(input)

	assert.Equal(t, redactedSecret, masked["keyword"])
	assert.Equal(t, 3, masked["shift"])

	steps, ok := masked["steps"].([]any)
	require.True(t, ok)
	require.Len(t, steps, 1)
	step, ok := steps[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vigenere_encrypt", step["name"])
	assert.Equal(t, redactedSecret, step["keyword"])

	// input is left untouched
	assert.Equal(t, "lemon", input["keyword"])
}

func TestMapAppliesNeverPersistMask(t *testing.T) {
	input := map[string]any{
		"label":         "my recipe",
		"note":          "ok",
		"never_persist": []any{"label", "missing"},
	}
	masked := Map(input)
	_, exists := masked["never_persist"]
	assert.False(t, exists, "never_persist key should be removed")
	assert.Equal(t, redactedSecret, masked["label"])
	assert.Equal(t, "ok", masked["note"])
}

func TestMapStringAppliesNeverPersistMask(t *testing.T) {
	input := map[string]string{
		"label":         "my recipe",
		"Keyword":       "lemon",
		"another_field": "ok",
		"never_persist": "label, missing",
	}
	masked := MapString(input)
	_, exists := masked["never_persist"]
	assert.False(t, exists)
	assert.Equal(t, redactedSecret, masked["label"])
	assert.Equal(t, redactedSecret, masked["Keyword"])
	assert.Equal(t, "ok", masked["another_field"])
}

func TestMapNilAndEmpty(t *testing.T) {
	assert.Nil(t, Map(nil))
	assert.Nil(t, Map(map[string]any{}))
	assert.Nil(t, MapString(nil))
	assert.Nil(t, MapString(map[string]string{}))
	assert.Nil(t, Slice(nil))
}
