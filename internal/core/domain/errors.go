package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrMalformedToken     = errors.New("malformed token")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrKeyNotFound        = errors.New("key not found")
)

var (
	ErrNoActiveCart      = errors.New("no active cart")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
)

// APIError is a non-2xx backend response that carried a message payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Is lets callers match 401 and 403 responses against the sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// AuthError is returned when the backend rejects a login or registration.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// StockError reports a mutation that would push a line item past the
// product's stock ceiling.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("only %d units of %s in stock, %d requested", e.Available, e.ProductID, e.Requested)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }
