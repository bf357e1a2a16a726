package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyWebhookSignature checks a Razorpay webhook signature against the raw
// request bytes. The digest is HMAC-SHA256 over the exact bytes received on
// the wire, hex encoded; re-serializing the body before verifying would break
// the signature. Fails closed: an empty secret or signature is always invalid.
func VerifyWebhookSignature(rawBody []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
