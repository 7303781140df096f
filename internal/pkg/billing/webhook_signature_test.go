package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"type":"order.paid"}`)
	secret := "top-secret"
	now := time.Unix(1_700_000_000, 0)
	ts := strconv.FormatInt(now.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("msg_1." + ts + "."))
	mac.Write(payload)
	validSig := "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if err := VerifyWebhookSignature(payload, "msg_1", ts, validSig, secret, DefaultSignatureTolerance, now); err != nil {
		t.Fatalf("expected signature to validate: %v", err)
	}

	// rotated secrets send several signatures
	multi := "v1,Zm9v " + validSig
	if err := VerifyWebhookSignature(payload, "msg_1", ts, multi, secret, DefaultSignatureTolerance, now); err != nil {
		t.Fatalf("expected one of several signatures to validate: %v", err)
	}

	signed, err := SignWebhook(payload, "msg_1", ts, secret)
	if err != nil || signed != validSig {
		t.Fatalf("SignWebhook = %q, %v, want %q", signed, err, validSig)
	}
}

func TestVerifyWebhookSignatureRejects(t *testing.T) {
	payload := []byte(`{"type":"order.paid"}`)
	secret := "top-secret"
	now := time.Unix(1_700_000_000, 0)
	ts := strconv.FormatInt(now.Unix(), 10)
	sig, err := SignWebhook(payload, "msg_1", ts, secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
	staleSig, _ := SignWebhook(payload, "msg_1", stale, secret)

	tests := []struct {
		name    string
		payload []byte
		id      string
		ts      string
		sig     string
		secret  string
	}{
		{name: "tampered body", payload: []byte(`{"type":"order.refunded"}`), id: "msg_1", ts: ts, sig: sig, secret: secret},
		{name: "other id", payload: payload, id: "msg_2", ts: ts, sig: sig, secret: secret},
		{name: "wrong secret", payload: payload, id: "msg_1", ts: ts, sig: sig, secret: "other"},
		{name: "missing signature", payload: payload, id: "msg_1", ts: ts, sig: "", secret: secret},
		{name: "missing id", payload: payload, id: "", ts: ts, sig: sig, secret: secret},
		{name: "bad timestamp", payload: payload, id: "msg_1", ts: "yesterday", sig: sig, secret: secret},
		{name: "stale timestamp", payload: payload, id: "msg_1", ts: stale, sig: staleSig, secret: secret},
		{name: "unknown version", payload: payload, id: "msg_1", ts: ts, sig: "v2," + sig[3:], secret: secret},
		{name: "no secret configured", payload: payload, id: "msg_1", ts: ts, sig: sig, secret: ""},
	}

	for _, tt := range tests {
		err := VerifyWebhookSignature(tt.payload, tt.id, tt.ts, tt.sig, tt.secret, DefaultSignatureTolerance, now)
		if !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("%s: expected ErrSignatureInvalid, got %v", tt.name, err)
		}
	}
}

func TestVerifyWebhookSignatureZeroToleranceSkipsWindow(t *testing.T) {
	payload := []byte(`{}`)
	sig, _ := SignWebhook(payload, "msg_1", "1", "secret")
	if err := VerifyWebhookSignature(payload, "msg_1", "1", sig, "secret", 0, time.Now()); err != nil {
		t.Fatalf("expected old timestamp to pass without tolerance: %v", err)
	}
}
