// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storeapi/config"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/service"
	"storeapi/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and confirmation tokens share one secret; the purpose travels in the signed "type" claim.
type jwtService struct {
	secret          []byte
	method          jwt.SigningMethod
	accessTTL       time.Duration // Time-to-live for access tokens.
	confirmationTTL time.Duration // Time-to-live for email confirmation tokens.
	now             func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It fails when the secret is empty or the algorithm is not an HMAC algorithm.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	if cfg.Auth == nil || cfg.Auth.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.Auth.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unsupported signing algorithm %q", cfg.Auth.Algorithm)
	}

	return &jwtService{
		secret:          []byte(cfg.Auth.SecretKey),
		method:          method,
		accessTTL:       cfg.Auth.AccessTokenTTL,
		confirmationTTL: cfg.Auth.ConfirmationTokenTTL,
		now:             now,
	}, nil
}

// Issue signs a token for subject tagged with purpose.
func (s *jwtService) Issue(subject string, purpose entity.TokenPurpose) (string, error) {
	if !purpose.IsValid() {
		return "", errors.Errorf("unknown token purpose %q", purpose)
	}

	issuedAt := s.now()
	claims := service.Claims{
		Type: purpose.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.TTL(purpose))),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Resolve verifies signature, algorithm and expiry, then subject and purpose.
func (s *jwtService) Resolve(tokenString string, expected entity.TokenPurpose) (string, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domainerrors.ErrTokenExpired
		}
		return "", domainerrors.ErrTokenInvalid
	}

	if claims.Subject == "" {
		return "", domainerrors.ErrTokenMissingSubject
	}

	if claims.Type != expected.String() {
		return "", domainerrors.ErrTokenWrongPurpose.WithMessage(
			fmt.Sprintf("token has incorrect type, expected %s", expected),
		)
	}

	return claims.Subject, nil
}

// TTL returns the configured lifetime for tokens of the given purpose.
func (s *jwtService) TTL(purpose entity.TokenPurpose) time.Duration {
	if purpose == entity.TokenPurposeConfirmation {
		return s.confirmationTTL
	}

	return s.accessTTL
}
