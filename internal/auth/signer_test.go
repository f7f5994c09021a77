package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerIssueVerify(t *testing.T) {
	signer := NewSigner("test-secret")

	token, err := signer.Issue("alice", "0", 1700000000000)
	require.NoError(t, err)
	assert.Contains(t, token, ".")

	payload, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.Identity)
	assert.Equal(t, "0", payload.Field2)
	assert.Equal(t, int64(1700000000000), payload.IssuedAtMs)
}

func TestSignerRejectsUnstampedToken(t *testing.T) {
	signer := NewSigner("test-secret")

	// A bare codec token, as a client forging base64("anyuser:0:now")
	// would send it.
	forged, err := Encode("anyuser", "0", 1700000000000)
	require.NoError(t, err)

	_, err = signer.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestSignerRejectsTamperedPayload(t *testing.T) {
	signer := NewSigner("test-secret")

	token, err := signer.Issue("alice", "0", 1700000000000)
	require.NoError(t, err)

	payload, mac, ok := strings.Cut(token, ".")
	require.True(t, ok)

	// Re-encode a different identity under the original stamp.
	swapped, err := Encode("mallory", "1", 1700000000000)
	require.NoError(t, err)

	_, err = signer.Verify(swapped + "." + mac)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	// Truncated stamp.
	_, err = signer.Verify(payload + "." + mac[:len(mac)-2])
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestSignerRejectsForeignSecret(t *testing.T) {
	token, err := NewSigner("secret-a").Issue("alice", "0", 1700000000000)
	require.NoError(t, err)

	_, err = NewSigner("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
