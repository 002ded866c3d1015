package router

import (
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
)

const (
	identityContextKey = "identity"
	msgUnauthorized    = "Unauthorized access"
)

// AccessGuard rejects requests without a valid bearer token and attaches
// the caller identity to the request context. Every failure yields the
// same 401 response.
func AccessGuard(tokens auth.TokenService) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: identityContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			// echo-jwt reports a missing token as *echo.HTTPError; wrapped so
			// it does not replace the generic message.
			denied := apperrors.Unauthenticated(msgUnauthorized)
			denied.Err = fmt.Errorf("verify token: %w", err)
			return echo.NewHTTPError(denied.StatusCode, denied.ToErrorResponse()).SetInternal(denied)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(attachIdentity(next))
	}
}

func attachIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := c.Get(identityContextKey).(auth.Identity)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: msgUnauthorized})
		}
		req := c.Request()
		c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), id)))
		return next(c)
	}
}
