package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/photo-gallery/internal/model"
)

func newTestTokens() *TokenService {
	return NewTokenService("user-secret", "admin-secret", 24*time.Hour, time.Hour)
}

func TestIssueUserToken_RoundTrip(t *testing.T) {
	s := newTestTokens()
	before := time.Now().UTC()

	tok, err := s.IssueUserToken(7, "a@x.com")
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(24*time.Hour), tok.Exp, 5*time.Second)

	p, err := s.VerifyUser(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, model.Principal{Kind: model.KindUser, UserID: 7, Email: "a@x.com"}, p)
}

func TestIssueAdminToken_RoundTrip(t *testing.T) {
	s := newTestTokens()
	before := time.Now().UTC()

	tok, err := s.IssueAdminToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Hour), tok.Exp, 5*time.Second)

	p, err := s.VerifyAdmin(tok.Token)
	require.NoError(t, err)
	assert.True(t, p.IsAdmin())
	assert.Equal(t, "admin", p.Username)
}

func TestVerify_CrossDomainRejected(t *testing.T) {
	s := newTestTokens()

	userTok, err := s.IssueUserToken(1, "a@x.com")
	require.NoError(t, err)
	adminTok, err := s.IssueAdminToken("admin")
	require.NoError(t, err)

	_, err = s.VerifyAdmin(userTok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.VerifyUser(adminTok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_CrossDomainRejectedEvenWithSharedSecret(t *testing.T) {
	// Issuers still keep the domains apart if an operator reuses a secret.
	s := NewTokenService("same", "same", time.Hour, time.Hour)

	adminTok, err := s.IssueAdminToken("admin")
	require.NoError(t, err)
	_, err = s.VerifyUser(adminTok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	issuer := newTestTokens().WithClock(func() time.Time { return past })

	tok, err := issuer.IssueUserToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = newTestTokens().VerifyUser(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiryCheckedAtVerification(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	s := newTestTokens().WithClock(clock)

	tok, err := s.IssueAdminToken("admin")
	require.NoError(t, err)

	_, err = s.VerifyAdmin(tok.Token)
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	_, err = s.VerifyAdmin(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MalformedAndTampered(t *testing.T) {
	s := newTestTokens()
	_, err := s.VerifyUser("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	tok, err := s.IssueUserToken(1, "a@x.com")
	require.NoError(t, err)
	parts := strings.Split(tok.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	_, err = s.VerifyUser(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	s := newTestTokens()
	claims := Claims{
		ID:    1,
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    UserIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.VerifyUser(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiryRejected(t *testing.T) {
	s := newTestTokens()
	claims := Claims{ID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: UserIssuer}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("user-secret"))
	require.NoError(t, err)

	_, err = s.VerifyUser(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAdmin_ReturnsRoleAsFound(t *testing.T) {
	s := newTestTokens()
	claims := Claims{
		Username: "mallory",
		Role:     "editor",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    AdminIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("admin-secret"))
	require.NoError(t, err)

	p, err := s.VerifyAdmin(raw)
	require.NoError(t, err)
	assert.Equal(t, "editor", p.Role)
	assert.False(t, p.IsAdmin())
}
