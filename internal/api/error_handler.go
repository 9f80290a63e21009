package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes backend messages through verbatim.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, authErr.Error()
	}

	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return http.StatusConflict, stockErr.Error()
	}

	// Backend rejections keep their status and message.
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			log.Warn().Err(err).Str("path", c.Path()).Msg("backend error")
			return http.StatusBadGateway, apiErr.Message
		}
		return apiErr.Status, apiErr.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired, please log in again"
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrNoActiveCart),
		errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "connection error, please try again"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
