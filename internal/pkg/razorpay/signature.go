package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries hex(HMAC-SHA256(webhook secret, raw request body)).
const SignatureHeader = "X-Razorpay-Signature"

// ComputeSignature signs the payload exactly as received. Callers must pass the raw
// request bytes; a re-encoded body will not match what Razorpay signed.
func ComputeSignature(payload []byte, webhookSecret string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || webhookSecret == "" {
		return false
	}

	expected := ComputeSignature(payload, webhookSecret)
	return hmac.Equal([]byte(sig), []byte(expected))
}
