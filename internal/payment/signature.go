package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	apperrors "cricket-registration-backend/internal/errors"
)

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" keyed by secret
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a checkout callback signature in constant time
func Verify(secret, orderID, paymentID, signature string) error {
	if secret == "" {
		return apperrors.ErrPaymentSecretMissing
	}
	expected := Sign(secret, orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperrors.ErrInvalidSignature
	}
	return nil
}
