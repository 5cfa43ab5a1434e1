package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticatorPlainPassword(t *testing.T) {
	a, err := NewAuthenticator("admin", "s3cret", "signing-key", time.Hour)
	require.NoError(t, err)

	assert.NoError(t, a.Check("admin", "s3cret"))
	assert.ErrorIs(t, a.Check("admin", "wrong"), ErrBadCredentials)
	assert.ErrorIs(t, a.Check("root", "s3cret"), ErrBadCredentials)
}

func TestAuthenticatorHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAuthenticator("admin", string(hash), "signing-key", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, a.Check("admin", "s3cret"))
	assert.Error(t, a.Check("admin", string(hash)))
}

func TestAuthenticatorRequiresConfig(t *testing.T) {
	_, err := NewAuthenticator("", "x", "k", time.Hour)
	assert.Error(t, err)
	_, err = NewAuthenticator("admin", "x", "", time.Hour)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	a, err := NewAuthenticator("admin", "s3cret", "signing-key", time.Hour)
	require.NoError(t, err)

	token, exp, err := a.IssueToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	other, err := NewAuthenticator("admin", "s3cret", "another-key", time.Hour)
	require.NoError(t, err)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	a, err := NewAuthenticator("admin", "s3cret", "signing-key", -time.Minute)
	require.NoError(t, err)
	token, _, err := a.IssueToken("admin")
	require.NoError(t, err)
	_, err = a.ParseToken(token)
	assert.Error(t, err)
}
