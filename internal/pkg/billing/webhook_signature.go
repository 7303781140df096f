package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureTolerance bounds how far a delivery timestamp may drift
// from the local clock.
const DefaultSignatureTolerance = 5 * time.Minute

// VerifyWebhookSignature checks a Standard Webhooks signature as sent by
// Polar: base64(HMAC-SHA256(secret, id + "." + timestamp + "." + body)) in
// a space separated list of "v1,<sig>" entries. A zero tolerance disables
// the timestamp window check.
func VerifyWebhookSignature(payload []byte, msgID, timestamp, signatureHeader, secret string, tolerance time.Duration, now time.Time) error {
	msgID = strings.TrimSpace(msgID)
	timestamp = strings.TrimSpace(timestamp)
	signatureHeader = strings.TrimSpace(signatureHeader)
	if msgID == "" || timestamp == "" || signatureHeader == "" {
		return fmt.Errorf("%w: missing webhook headers", ErrSignatureInvalid)
	}

	key, err := webhookKey(secret)
	if err != nil {
		return err
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrSignatureInvalid)
	}
	if tolerance > 0 {
		sent := time.Unix(ts, 0)
		if now.Sub(sent) > tolerance || sent.Sub(now) > tolerance {
			return fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
		}
	}

	expected := signWebhook(key, msgID, timestamp, payload)
	for _, candidate := range strings.Fields(signatureHeader) {
		version, sig, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrSignatureInvalid
}

// SignWebhook produces a "v1,<base64>" signature header value. It is the
// counterpart of VerifyWebhookSignature and is used by tests and local
// tooling to build deliveries.
func SignWebhook(payload []byte, msgID, timestamp, secret string) (string, error) {
	key, err := webhookKey(secret)
	if err != nil {
		return "", err
	}
	return "v1," + base64.StdEncoding.EncodeToString(signWebhook(key, msgID, timestamp, payload)), nil
}

func signWebhook(key []byte, msgID, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// webhookKey returns the HMAC key. Polar signs with the raw bytes of the
// configured secret rather than a decoded "whsec_" key.
func webhookKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: webhook secret not configured", ErrSignatureInvalid)
	}
	return []byte(secret), nil
}
