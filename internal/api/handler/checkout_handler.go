package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// CheckoutHandler submits the cart.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout handles POST /v1/checkout. The response carries the payment
// processor's hosted page the caller should redirect to.
//
// @Summary      Place an order for the cart
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  checkoutResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	res, err := h.checkout.Checkout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:     res.OrderID,
		Total:       res.Total,
		CheckoutURL: res.CheckoutURL,
	})
}
