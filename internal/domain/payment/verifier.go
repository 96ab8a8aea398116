package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks gateway callbacks against the shared signing secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(orderID, externalPaymentID, presented string) bool {
	return VerifySignature(orderID, externalPaymentID, presented, v.secret)
}

func (v *Verifier) Sign(orderID, externalPaymentID string) string {
	return Sign(orderID, externalPaymentID, v.secret)
}

// Sign returns the lowercase hex HMAC-SHA256 of orderID|externalPaymentID.
func Sign(orderID, externalPaymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + externalPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time with respect to the signature contents.
func VerifySignature(orderID, externalPaymentID, presented string, secret []byte) bool {
	expected := Sign(orderID, externalPaymentID, secret)
	return hmac.Equal([]byte(expected), []byte(presented))
}
