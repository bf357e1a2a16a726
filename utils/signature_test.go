package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignatureValid(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	secret := "whsec_test_123"

	assert.True(t, VerifyWebhookSignature(body, signBody(body, secret), secret))
}

func TestVerifyWebhookSignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"amount":49999}}`)
	secret := "whsec_test_123"
	signature := signBody(body, secret)

	// Flipping any single byte after signing must invalidate the signature.
	for i := range body {
		tampered := make([]byte, len(body))
		copy(tampered, body)
		tampered[i] ^= 0x01

		assert.False(t, VerifyWebhookSignature(tampered, signature, secret),
			"tampered byte %d should not verify", i)
	}
}

func TestVerifyWebhookSignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	signature := signBody(body, "whsec_right")

	assert.False(t, VerifyWebhookSignature(body, signature, "whsec_wrong"))
}

func TestVerifyWebhookSignatureFailsClosedOnEmptySecret(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	// Never verify, never panic, when the secret is not configured. Even a
	// signature that would match an empty key is rejected.
	assert.NotPanics(t, func() {
		assert.False(t, VerifyWebhookSignature(body, signBody(body, ""), ""))
	})
}

func TestVerifyWebhookSignatureRejectsMissingSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	assert.False(t, VerifyWebhookSignature(body, "", "whsec_test_123"))
}

func TestVerifyWebhookSignatureExactEncoding(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	secret := "whsec_test_123"

	// The comparison is against lowercase hex exactly.
	upper := []byte(signBody(body, secret))
	for i, c := range upper {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 'a' + 'A'
		}
	}
	assert.False(t, VerifyWebhookSignature(body, string(upper), secret))
}
