// Package response writes JSON bodies in the shapes clients expect.
package response

import (
	"net/http"

	deliverycontext "storeapi/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail    string `json:"detail"`               // User-facing message.
	Code      string `json:"code"`                 // Machine-readable error code, e.g. "TOKEN_EXPIRED".
	RequestID string `json:"request_id,omitempty"` // Request tracking ID.
}

// DetailResponse is a bare acknowledgement.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Success writes data as the response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Detail writes {"detail": message}.
func Detail(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, DetailResponse{Detail: message})
}

// NoContent writes an empty response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error returns an error response. 401 responses advertise the bearer scheme.
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	if statusCode == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}

	return c.JSON(statusCode, ErrorResponse{
		Detail:    message,
		Code:      errorCode,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}
