// file: internals/features/sync/signature/signature.go
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// ReplayWindow bounds how far a signed request's timestamp may drift from
// server time (both directions). This window is the anti-replay control — the
// signature itself proves the sender, not freshness.
const ReplayWindow = 5 * time.Minute

// Sign computes hex(HMAC-SHA256(secret, rawBody + timestamp)). The exact byte
// concatenation must match on both sides of the link, so the body is passed raw
// and never re-serialized before signing.
func Sign(secret string, rawBody []byte, timestamp string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write(rawBody)
	_, _ = m.Write([]byte(timestamp))
	return hex.EncodeToString(m.Sum(nil))
}

// Verify recomputes the signature and compares in constant time.
func Verify(secret string, rawBody []byte, timestamp, sig string) bool {
	expected := Sign(secret, rawBody, timestamp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

// Timestamp renders the current instant as epoch milliseconds, the wire format
// the SIS side expects in x-timestamp.
func Timestamp(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// CheckFreshness rejects a missing, non-numeric, or out-of-window timestamp.
func CheckFreshness(timestamp string, now time.Time) error {
	if timestamp == "" {
		return fmt.Errorf("signature: missing timestamp")
	}
	ms, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("signature: non-numeric timestamp %q", timestamp)
	}
	sent := time.UnixMilli(ms)
	drift := now.Sub(sent)
	if drift < 0 {
		drift = -drift
	}
	if drift > ReplayWindow {
		return fmt.Errorf("signature: timestamp outside replay window (drift %s)", drift)
	}
	return nil
}
