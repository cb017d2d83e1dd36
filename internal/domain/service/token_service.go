package service

import (
	"time"

	"storeapi/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for the JWT tokens.
// The subject (email) travels in RegisteredClaims.Subject.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and resolves signed, expiring, purpose-tagged tokens.
type TokenService interface {
	// Issue signs a token for subject that only a Resolve with the same purpose accepts.
	Issue(subject string, purpose entity.TokenPurpose) (string, error)

	// Resolve verifies the token and returns its subject. It fails with
	// ErrTokenExpired, ErrTokenInvalid, ErrTokenMissingSubject or ErrTokenWrongPurpose.
	Resolve(token string, expected entity.TokenPurpose) (string, error)

	// TTL returns how long tokens of the given purpose stay valid.
	TTL(purpose entity.TokenPurpose) time.Duration
}
