package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	user := &domain.User{ID: "user-1", Username: "casey"}

	token, err := issuer.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.IssueToken(&domain.User{ID: "user-1", Username: "casey"})
	require.NoError(t, err)

	_, err = issuer.ParseToken(token)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestForeignSignatureRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	token, err := other.IssueToken(&domain.User{ID: "user-1", Username: "casey"})
	require.NoError(t, err)

	_, err = issuer.ParseToken(token)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestMalformedTokenRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.ParseToken(token)
		assert.ErrorIs(t, err, domain.ErrAuthRequired, "token %q", token)
	}
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	issuer := NewIssuer("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, issuer.ttl)
}
