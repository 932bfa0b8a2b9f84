package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidQR is returned for QR payloads that are malformed or not ours.
var ErrInvalidQR = errors.New("invalid qr payload")

// QRSigner produces and checks the payload printed into vehicle QR codes:
// base64url(registration) "." hex(HMAC-SHA256(secret, registration)).
type QRSigner struct {
	secret []byte
}

// NewQRSigner builds a signer.
func NewQRSigner(secret string) *QRSigner {
	return &QRSigner{secret: []byte(secret)}
}

// Encode returns the payload for a registration number.
func (s *QRSigner) Encode(registrationNumber string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(registrationNumber)) + "." + s.sign(registrationNumber)
}

// Decode verifies the payload and returns the registration number.
func (s *QRSigner) Decode(payload string) (string, error) {
	encoded, signature, ok := strings.Cut(strings.TrimSpace(payload), ".")
	if !ok || encoded == "" || signature == "" {
		return "", ErrInvalidQR
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalidQR
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", ErrInvalidQR
	}
	expected, _ := hex.DecodeString(s.sign(string(raw)))
	if !hmac.Equal(expected, provided) {
		return "", ErrInvalidQR
	}
	return string(raw), nil
}

func (s *QRSigner) sign(registrationNumber string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(registrationNumber))
	return hex.EncodeToString(mac.Sum(nil))
}
