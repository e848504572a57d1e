package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"
)

func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)[:length]
}

// RandomAPIKey returns a token shaped like a vendor personal access token.
func RandomAPIKey() string {
	const keyLength = 64

	return RandomString(keyLength)
}

func Eventually(t *testing.T, condition func() bool, timeout time.Duration, interval time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}

		time.Sleep(interval)
	}

	t.Fatal("Condition not met within timeout")
}
