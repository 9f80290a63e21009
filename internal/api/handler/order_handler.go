package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// OrderHandler reads the polled order list.
type OrderHandler struct {
	feed ports.OrderFeed
}

func NewOrderHandler(feed ports.OrderFeed) *OrderHandler {
	return &OrderHandler{feed: feed}
}

// List handles GET /v1/orders. It returns the last applied poll result and
// never blocks on the backend.
//
// @Summary      Orders of the session (all orders for admins)
// @Tags         orders
// @Produce      json
// @Success      200  {object}  orderListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toOrderList(h.feed.Orders()))
}

// Refresh handles POST /v1/orders/refresh. Concurrent callers share one
// backend request.
//
// @Summary      Refetch the order list now
// @Tags         orders
// @Produce      json
// @Success      200  {object}  orderListResponse
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/orders/refresh [post]
func (h *OrderHandler) Refresh(c echo.Context) error {
	orders, err := h.feed.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(orders))
}
