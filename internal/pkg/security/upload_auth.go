package security

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultUploadAuthTTL is how long ImageKit accepts a signed upload.
const DefaultUploadAuthTTL = 30 * time.Minute

// UploadAuth are the parameters a browser needs for a direct ImageKit upload.
type UploadAuth struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// GenerateUploadAuth signs token+expire with the private key using
// HMAC-SHA1, the scheme ImageKit verifies client side uploads with.
func GenerateUploadAuth(privateKey, publicKey string, ttl time.Duration, now time.Time) (*UploadAuth, error) {
	if privateKey == "" || publicKey == "" {
		return nil, errors.New("imagekit keys are not configured")
	}
	if ttl <= 0 {
		ttl = DefaultUploadAuthTTL
	}

	token := uuid.NewString()
	expire := now.Add(ttl).Unix()
	return &UploadAuth{
		Token:     token,
		Expire:    expire,
		Signature: SignUpload(privateKey, token, expire),
		PublicKey: publicKey,
	}, nil
}

func SignUpload(privateKey, token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
