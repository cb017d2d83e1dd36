package middleware

import (
	"strings"

	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const contextKeyCurrentUser = "current_user"

// errNotAuthenticated is returned when no usable bearer token accompanies the request.
var errNotAuthenticated = domainerrors.ErrInvalidCredentials.WithMessage("Not authenticated")

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthMiddleware resolves the bearer access token to the current user.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC}
}

// Authenticate rejects the request unless its Authorization header carries a
// valid, unexpired access token for an existing user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errNotAuthenticated
		}

		user, err := m.authUC.CurrentUser(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(contextKeyCurrentUser, user)

		return next(c)
	}
}

// GetCurrentUser returns the user stored by Authenticate.
func GetCurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyCurrentUser).(*entity.User)

	return user, ok && user != nil
}

// bearerToken extracts the credentials of a "Bearer <token>" header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
