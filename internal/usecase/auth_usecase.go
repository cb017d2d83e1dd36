// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storeapi/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the new user. The confirmation link is only handed to
// the UserRegistered event, never to the registrant.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput is an OAuth2-style bearer token response.
type LoginOutput struct {
	AccessToken string
	TokenType   string
}

// TokenTypeBearer is the token_type returned by Login.
const TokenTypeBearer = "bearer"

// AuthUsecase defines registration, authentication and email confirmation.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Authenticate checks credentials. Unknown email and wrong password fail identically.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// CurrentUser resolves a bearer access token to its user.
	CurrentUser(ctx context.Context, accessToken string) (*entity.User, error)

	// ConfirmEmail redeems a confirmation token. Re-confirming is not an error.
	ConfirmEmail(ctx context.Context, confirmationToken string) error
}
