package signature

import (
	"testing"
	"time"
)

func TestSignRoundTrip(t *testing.T) {
	body := []byte(`{"scheduleId":"abc","employeeId":"def","assigned":true}`)
	ts := Timestamp(time.Now())

	sig := Sign("shared-secret", body, ts)
	if sig == "" || len(sig) != 64 {
		t.Fatalf("expected 64-char hex signature, got %q", sig)
	}

	if !Verify("shared-secret", body, ts, sig) {
		t.Error("verifier with same secret must accept the signature")
	}
	if Verify("different-secret", body, ts, sig) {
		t.Error("verifier with a different secret must reject")
	}
	if Verify("shared-secret", []byte(`{"tampered":true}`), ts, sig) {
		t.Error("a tampered body must be rejected")
	}
	if Verify("shared-secret", body, Timestamp(time.Now().Add(time.Second)), sig) {
		t.Error("a different timestamp must be rejected")
	}
}

func TestSignDeterministic(t *testing.T) {
	body := []byte(`{"data":"fetch-all-schedules"}`)
	ts := "1700000000000"
	if Sign("s", body, ts) != Sign("s", body, ts) {
		t.Error("signature must be deterministic for identical inputs")
	}
}

func TestCheckFreshness(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		ts      string
		wantErr bool
	}{
		{"fresh", Timestamp(now), false},
		{"4 minutes old", Timestamp(now.Add(-4 * time.Minute)), false},
		{"4 minutes ahead", Timestamp(now.Add(4 * time.Minute)), false},
		{"10 minutes old", Timestamp(now.Add(-10 * time.Minute)), true},
		{"10 minutes ahead", Timestamp(now.Add(10 * time.Minute)), true},
		{"missing", "", true},
		{"non-numeric", "yesterday", true},
	}
	for _, tt := range tests {
		err := CheckFreshness(tt.ts, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: CheckFreshness(%q) err=%v, wantErr=%v", tt.name, tt.ts, err, tt.wantErr)
		}
	}
}

// A stale request must fail regardless of a correct signature: freshness and
// signature checks are independent gates.
func TestStaleButCorrectlySigned(t *testing.T) {
	now := time.Now()
	body := []byte(`{"data":"fetch-all-sections"}`)
	ts := Timestamp(now.Add(-10 * time.Minute))
	sig := Sign("shared-secret", body, ts)

	if !Verify("shared-secret", body, ts, sig) {
		t.Fatal("signature itself should verify")
	}
	if err := CheckFreshness(ts, now); err == nil {
		t.Error("10-minute-old timestamp must be rejected")
	}
}
