package auth

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrTokenMalformed is returned when a token cannot be decoded.
	ErrTokenMalformed = errors.New("malformed session token")
	// ErrInvalidField is returned when a field contains the token delimiter.
	ErrInvalidField = errors.New("token field contains reserved character")
)

// Payload is the decoded content of a session token.
type Payload struct {
	Identity   string
	Field2     string
	IssuedAtMs int64
}

// Encode joins identity, field2 and the issuance timestamp (unix
// milliseconds) with ':' and base64-encodes the result. Fields containing
// ':' are rejected: allowing them would make Decode ambiguous.
func Encode(identity, field2 string, issuedAtMs int64) (string, error) {
	if strings.ContainsRune(identity, ':') || strings.ContainsRune(field2, ':') {
		return "", ErrInvalidField
	}
	raw := identity + ":" + field2 + ":" + strconv.FormatInt(issuedAtMs, 10)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Decode reverses Encode. Any failure — invalid base64, wrong field count,
// non-integer timestamp — yields ErrTokenMalformed; Decode never panics on
// hostile input.
func Decode(token string) (*Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}
	issuedAt, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	return &Payload{
		Identity:   parts[0],
		Field2:     parts[1],
		IssuedAtMs: issuedAt,
	}, nil
}
