package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeapi/config"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/service"
)

const testSecret = "test_secret_key_very_long_for_testing"

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			SecretKey:            testSecret,
			Algorithm:            "HS256",
			AccessTokenTTL:       30 * time.Minute,
			ConfirmationTokenTTL: 1440 * time.Minute,
		},
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestJWTService(t *testing.T) (*jwtService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(newTestConfig(), clock.Now)
	require.NoError(t, err)

	return svc, clock
}

func TestNewJWTService(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	t.Run("empty secret", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Auth.SecretKey = ""

		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})

	t.Run("missing auth section", func(t *testing.T) {
		_, err := NewJWTService(&config.Config{})
		assert.Error(t, err)
	})

	t.Run("non HMAC algorithm", func(t *testing.T) {
		for _, alg := range []string{"RS256", "ES256", "none", ""} {
			cfg := newTestConfig()
			cfg.Auth.Algorithm = alg

			_, err := NewJWTService(cfg)
			assert.Error(t, err, alg)
		}
	})

	t.Run("HMAC variants", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			cfg := newTestConfig()
			cfg.Auth.Algorithm = alg

			_, err := NewJWTService(cfg)
			assert.NoError(t, err, alg)
		}
	})
}

func TestJWTService_IssueAndResolve(t *testing.T) {
	svc, _ := newTestJWTService(t)

	for _, purpose := range []entity.TokenPurpose{entity.TokenPurposeAccess, entity.TokenPurposeConfirmation} {
		t.Run(purpose.String(), func(t *testing.T) {
			token, err := svc.Issue("alice@example.com", purpose)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			subject, err := svc.Resolve(token, purpose)
			require.NoError(t, err)
			assert.Equal(t, "alice@example.com", subject)
		})
	}
}

func TestJWTService_IssueClaims(t *testing.T) {
	svc, clock := newTestJWTService(t)

	token, err := svc.Issue("alice@example.com", entity.TokenPurposeConfirmation)
	require.NoError(t, err)

	claims := &service.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "confirmation", claims.Type)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, clock.now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.now.Add(1440*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_IssueUnknownPurpose(t *testing.T) {
	svc, _ := newTestJWTService(t)

	_, err := svc.Issue("alice@example.com", entity.TokenPurpose("refresh"))
	assert.Error(t, err)
}

func TestJWTService_ResolveWrongPurpose(t *testing.T) {
	svc, _ := newTestJWTService(t)

	confirmation, err := svc.Issue("alice@example.com", entity.TokenPurposeConfirmation)
	require.NoError(t, err)

	_, err = svc.Resolve(confirmation, entity.TokenPurposeAccess)
	require.ErrorIs(t, err, domainerrors.ErrTokenWrongPurpose)
	assert.Equal(t, "token has incorrect type, expected access", err.Error())

	access, err := svc.Issue("alice@example.com", entity.TokenPurposeAccess)
	require.NoError(t, err)

	_, err = svc.Resolve(access, entity.TokenPurposeConfirmation)
	require.ErrorIs(t, err, domainerrors.ErrTokenWrongPurpose)
	assert.Equal(t, "token has incorrect type, expected confirmation", err.Error())
}

func TestJWTService_ResolveExpired(t *testing.T) {
	svc, clock := newTestJWTService(t)

	token, err := svc.Issue("alice@example.com", entity.TokenPurposeAccess)
	require.NoError(t, err)

	clock.now = clock.now.Add(29 * time.Minute)
	_, err = svc.Resolve(token, entity.TokenPurposeAccess)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	_, err = svc.Resolve(token, entity.TokenPurposeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestJWTService_ResolveConfirmationOutlivesAccess(t *testing.T) {
	svc, clock := newTestJWTService(t)

	token, err := svc.Issue("alice@example.com", entity.TokenPurposeConfirmation)
	require.NoError(t, err)

	clock.now = clock.now.Add(23 * time.Hour)
	subject, err := svc.Resolve(token, entity.TokenPurposeConfirmation)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = svc.Resolve(token, entity.TokenPurposeConfirmation)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestJWTService_ResolveInvalid(t *testing.T) {
	svc, clock := newTestJWTService(t)

	valid, err := svc.Issue("alice@example.com", entity.TokenPurposeAccess)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	accessClaims := service.Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "clearly-not-a-jwt-token-format"},
		{name: "empty", token: ""},
		{name: "tampered signature", token: valid[:len(valid)-2] + "xx"},
		{name: "other secret", token: sign(jwt.SigningMethodHS256, []byte("another-secret"), accessClaims)},
		{name: "other HMAC algorithm", token: sign(jwt.SigningMethodHS512, []byte(testSecret), accessClaims)},
		{name: "alg none", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, accessClaims)},
		{name: "missing exp", token: sign(jwt.SigningMethodHS256, []byte(testSecret), service.Claims{
			Type:             "access",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(tt.token, entity.TokenPurposeAccess)
			assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
		})
	}
}

func TestJWTService_ResolveExpiredWithBadSignatureIsInvalid(t *testing.T) {
	svc, clock := newTestJWTService(t)

	claims := service.Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = svc.Resolve(token, entity.TokenPurposeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_ResolveMissingSubject(t *testing.T) {
	svc, clock := newTestJWTService(t)

	claims := service.Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Resolve(token, entity.TokenPurposeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenMissingSubject)
}

func TestJWTService_ResolveMissingType(t *testing.T) {
	svc, clock := newTestJWTService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Resolve(token, entity.TokenPurposeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenWrongPurpose)
}

func TestJWTService_TTL(t *testing.T) {
	svc, _ := newTestJWTService(t)

	assert.Equal(t, 30*time.Minute, svc.TTL(entity.TokenPurposeAccess))
	assert.Equal(t, 1440*time.Minute, svc.TTL(entity.TokenPurposeConfirmation))
}
