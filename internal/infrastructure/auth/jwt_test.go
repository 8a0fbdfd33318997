package auth

import (
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough-32",
		Issuer:     "pdv-test",
		Expiration: time.Hour,
	})
}

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := newTestService()
	session := identity.Session{UserID: 42, Username: "maria", Role: identity.RoleSeller}

	tok, err := svc.Issue(session)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	got, err := svc.Parse(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc := newTestService()
	tok, err := svc.Issue(identity.Session{UserID: 1, Username: "admin", Role: identity.RoleAdmin})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestService()
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-another-secret-xx", Issuer: "pdv-test"})
		_, err := other.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough-32", Issuer: "elsewhere"})
		_, err := other.Parse(tok.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "pdv-test"},
			Role:             "admin",
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "pdv-test"},
			Role:             "root",
		}).SignedString(svc.secret)
		require.NoError(t, err)
		_, err = svc.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestJWTService_IssueRequiresUser(t *testing.T) {
	_, err := newTestService().Issue(identity.Session{})
	assert.ErrorIs(t, err, ErrMissingUserID)
}
