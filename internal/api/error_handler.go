package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rexxailabs/client-projects-api/internal/api/handler"
	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// errorBody is the canonical error envelope for all API errors:
// {"error":{"message":"...","details":[...]}}. Details carry per-field
// validation entries and are emitted only in development mode.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their deterministic HTTP status codes.
//   - Renders validation failures with per-field {path, message} entries.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, details := resolveError(err, log, c)
		if !development {
			details = nil
		}
		_ = c.JSON(code, errorBody{Error: errorDetail{Message: msg, Details: details}})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	// Request validation failures carry their field entries.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from router, middleware 401s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error(), nil
	case errors.Is(err, domain.ErrTooManyLoginAttempts):
		return http.StatusTooManyRequests, err.Error(), nil
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, err.Error(), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error(), nil
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, err.Error(), nil
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, err.Error(), nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error", nil
}
