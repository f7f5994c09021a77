package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"
)

// SessionTTL is the lifetime of an issued session token.
const SessionTTL = 24 * time.Hour

// Signer issues and verifies HMAC-stamped session tokens. The stamped form
// is "<payload>.<base64url(mac)>" where payload is the codec output; no
// field is trusted until the stamp verifies.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer keyed with the given secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Issue encodes the payload fields and appends the HMAC stamp.
func (s *Signer) Issue(identity, field2 string, issuedAtMs int64) (string, error) {
	payload, err := Encode(identity, field2, issuedAtMs)
	if err != nil {
		return "", err
	}
	return payload + "." + s.stamp(payload), nil
}

// Verify checks the stamp in constant time and decodes the payload.
// Unsigned, tampered, or otherwise malformed tokens yield ErrTokenMalformed.
func (s *Signer) Verify(token string) (*Payload, error) {
	payload, mac, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrTokenMalformed
	}
	if !hmac.Equal([]byte(mac), []byte(s.stamp(payload))) {
		return nil, ErrTokenMalformed
	}
	return Decode(payload)
}

func (s *Signer) stamp(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
