// Package redact masks key material before it reaches logs or audit trails.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	neverPersistKey = "never_persist"
	redactedSecret  = "[REDACTED_SECRET]"
)

// sensitiveKeys are map keys whose values are always masked.
var sensitiveKeys = map[string]struct{}{
	"keyword":    {},
	"key":        {},
	"passphrase": {},
	"secret":     {},
	"password":   {},
}

var kvSecretRe = regexp.MustCompile(`(?i)\b((?:keyword|passphrase|secret|password)\s*[:=]\s*)(['"]?)([^\s'",;]+)(['"]?)`)

// String masks keyword=value style assignments found in free text.
func String(in string) string {
	if strings.TrimSpace(in) == "" {
		return in
	}
	return kvSecretRe.ReplaceAllString(in, `$1$2`+redactedSecret+`$4`)
}

// Interface redacts recognised sensitive values within nested structures.
func Interface(value any) any {
	switch v := value.(type) {
	case string:
		return String(v)
	case []string:
		return Slice(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Interface(elem)
		}
		return out
	case map[string]string:
		return MapString(v)
	case map[string]any:
		return Map(v)
	case fmt.Stringer:
		return String(v.String())
	default:
		return value
	}
}

// Map redacts sensitive values within a map of arbitrary values. Values under
// sensitive keys, or keys listed in a "never_persist" entry, are replaced.
func Map(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	var extra []string
	if raw, ok := in[neverPersistKey]; ok {
		extra = collectNeverPersist(raw)
	}
	masked := keySet(extra)
	out := make(map[string]any, len(in))
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			continue
		}
		if isSensitive(k, masked) {
			out[k] = redactedSecret
			continue
		}
		out[k] = Interface(v)
	}
	return out
}

// MapString redacts sensitive values within a string map.
func MapString(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	masked := keySet(splitList(in[neverPersistKey]))
	out := make(map[string]string, len(in))
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			continue
		}
		if isSensitive(k, masked) {
			out[k] = redactedSecret
			continue
		}
		out[k] = String(v)
	}
	return out
}

// Slice redacts sensitive values within a slice of strings.
func Slice(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = String(v)
	}
	return out
}

func isSensitive(key string, extra map[string]struct{}) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := sensitiveKeys[lower]; ok {
		return true
	}
	_, ok := extra[key]
	return ok
}

func collectNeverPersist(value any) []string {
	switch v := value.(type) {
	case string:
		return splitList(v)
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, fmt.Sprint(elem))
		}
		return out
	default:
		return nil
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func keySet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}
