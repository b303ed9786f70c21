// Package env resolves environment variables that may still be set under a
// previous name.
package env

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	warnLogger func(template string, args ...any) = func(template string, args ...any) {
		zap.S().Warnf(template, args...)
	}
	warnMu     sync.Mutex
	warnedKeys sync.Map
)

// Lookup returns the value of key if it is set. Otherwise each legacy name is
// tried in order; the first one found is returned and a deprecation warning
// is logged once per legacy name.
func Lookup(key string, legacy ...string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	for _, old := range legacy {
		if v, ok := os.LookupEnv(old); ok {
			logDeprecated(old, key)
			return v, true
		}
	}
	return "", false
}

func logDeprecated(oldKey, newKey string) {
	onceIface, _ := warnedKeys.LoadOrStore(oldKey, &sync.Once{})
	once := onceIface.(*sync.Once)
	once.Do(func() {
		warnMu.Lock()
		logger := warnLogger
		warnMu.Unlock()
		logger("%s is deprecated; use %s", oldKey, newKey)
	})
}

// ResetWarningsForTesting clears the cached once guards so tests can verify
// warning behaviour deterministically.
func ResetWarningsForTesting() {
	warnMu.Lock()
	warnedKeys = sync.Map{}
	warnMu.Unlock()
}

// SetWarnLoggerForTesting swaps the logger used for warnings. The returned
// function restores the previous logger and should be deferred in tests.
func SetWarnLoggerForTesting(fn func(template string, args ...any)) (restore func()) {
	warnMu.Lock()
	previous := warnLogger
	warnLogger = fn
	warnMu.Unlock()
	return func() {
		warnMu.Lock()
		warnLogger = previous
		warnMu.Unlock()
	}
}
