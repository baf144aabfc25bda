package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("staff-1", "door@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	staffID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staffID)
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	token, err := NewJWTCodec("secret-a").Issue("staff-1", "door@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTCodec("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue("staff-1", "door@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Garbage(t *testing.T) {
	_, err := NewJWTCodec("test-secret").Verify("not-a-jwt")
	assert.Error(t, err)
}
