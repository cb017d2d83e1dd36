// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storeapi/internal/delivery/api/middleware"
	"storeapi/internal/delivery/api/response"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// UserHandler serves registration, login and email confirmation.
type UserHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenRequest accepts both the OAuth2 password form, where username carries
// the email, and a JSON body with email.
type TokenRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse is an OAuth2 bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		return errors.WithStack(err)
	}

	// The confirmation link goes out with the UserRegistered event only.
	return response.Detail(c, http.StatusCreated, "User created. Please confirm your email.")
}

// Token exchanges credentials for an access token.
func (h *UserHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("malformed request body")
	}

	email := req.Email
	if email == "" {
		email = req.Username
	}
	if email == "" || req.Password == "" {
		return domainerrors.ErrValidationFailed.WithMessage("username and password are required")
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, TokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
	})
}

// Confirm redeems the confirmation token from the path.
func (h *UserHandler) Confirm(c echo.Context) error {
	if err := h.authUC.ConfirmEmail(c.Request().Context(), c.Param("token")); err != nil {
		return errors.WithStack(err)
	}

	return response.Detail(c, http.StatusOK, "User confirmed")
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials.WithMessage("Not authenticated")
	}

	return user, nil
}
