package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their stable HTTP status codes.
//   - Renders validation failures with the per-field message map.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		resp.Timestamp = time.Now().UTC()
		_ = c.JSON(resp.Status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorResponse {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{Status: he.Code, Error: http.StatusText(he.Code), Message: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures carry the offending fields.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errorResponse{
			Status: http.StatusBadRequest,
			Error:  "Validation failed",
			Errors: ve.Fields,
		}
	}

	// Known domain errors map to deterministic codes:
	// 401 credential/token failures, 403 disabled/role/ownership,
	// 404 not-found, 409 conflicts, 400 malformed input.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Status: http.StatusUnauthorized, Error: "Unauthorized", Message: "invalid credentials"}
	case errors.Is(err, domain.ErrTokenExpired):
		return errorResponse{Status: http.StatusUnauthorized, Error: "Unauthorized", Message: "token expired"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return errorResponse{Status: http.StatusUnauthorized, Error: "Unauthorized", Message: "invalid token"}
	case errors.Is(err, domain.ErrAccountDisabled):
		return errorResponse{Status: http.StatusForbidden, Error: "Forbidden", Message: "your account is not active, please contact an admin"}
	case errors.Is(err, domain.ErrRoleDenied):
		return errorResponse{Status: http.StatusForbidden, Error: "Forbidden", Message: err.Error()}
	case errors.Is(err, domain.ErrNotResourceOwner):
		return errorResponse{Status: http.StatusForbidden, Error: "Forbidden", Message: "you are not allowed to access this resource"}
	case errors.Is(err, domain.ErrUserNotFound):
		return errorResponse{Status: http.StatusNotFound, Error: "Not Found", Message: "user not found"}
	case errors.Is(err, domain.ErrClientNotFound):
		return errorResponse{Status: http.StatusNotFound, Error: "Not Found", Message: "client not found"}
	case errors.Is(err, domain.ErrCreditNotFound):
		return errorResponse{Status: http.StatusNotFound, Error: "Not Found", Message: "credit request not found"}
	case errors.Is(err, domain.ErrEmailExists):
		return errorResponse{Status: http.StatusConflict, Error: "Conflict", Message: "email already exists"}
	case errors.Is(err, domain.ErrUserExists):
		return errorResponse{Status: http.StatusConflict, Error: "Conflict", Message: "username already exists"}
	case errors.Is(err, domain.ErrCreditAlreadyDecided):
		return errorResponse{Status: http.StatusConflict, Error: "Conflict", Message: "credit request already decided"}
	case errors.Is(err, domain.ErrMalformedInput):
		return errorResponse{Status: http.StatusBadRequest, Error: "Bad Request", Message: "malformed input"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{Status: http.StatusInternalServerError, Error: "Internal Server Error", Message: "internal server error"}
}
