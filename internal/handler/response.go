package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
)

const (
	msgInvalidBody  = "Invalid request body."
	msgUnauthorized = "Unauthorized access"
)

// MessageResponse is the body of a success response without payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// errorResponse converts a service error into an echo error carrying the
// client message. The original error is kept as internal for logging.
func errorResponse(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// invalidBody wraps the decoder error so echo's error handler, which
// prefers an internal *echo.HTTPError over the outer one, still sends the
// generic message.
func invalidBody(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: msgInvalidBody}).
		SetInternal(fmt.Errorf("decode body: %w", err))
}

// parseID returns 0 for anything that is not an integer. Ids start at 1,
// so 0 never matches a record.
func parseID(c echo.Context) int {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0
	}
	return id
}

// caller returns the identity attached by the access guard.
func caller(c echo.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: msgUnauthorized})
	}
	return id, nil
}

// decodeJSON decodes the request body into dst. Numbers decoded into
// interface values stay json.Number. An empty body leaves dst untouched.
func decodeJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return invalidBody(err)
	}
	return nil
}
