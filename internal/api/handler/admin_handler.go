package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// AdminHandler is the back-office surface. Routes are mounted behind RBAC;
// the backend still authorizes every call.
type AdminHandler struct {
	admin ports.AdminService
	feed  ports.OrderFeed
}

func NewAdminHandler(admin ports.AdminService, feed ports.OrderFeed) *AdminHandler {
	return &AdminHandler{admin: admin, feed: feed}
}

// Orders handles GET /v1/admin/orders.
//
// @Summary      All orders
// @Tags         admin
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  orderListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.feed.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(orders))
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:id.
//
// @Summary      Change an order's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/orders/{id} [patch]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.admin.UpdateOrderStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Customers handles GET /v1/admin/customers.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}   domain.Profile
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/customers [get]
func (h *AdminHandler) Customers(c echo.Context) error {
	customers, err := h.admin.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// DeleteCustomer handles DELETE /v1/admin/customers/:id.
//
// @Summary      Delete a customer
// @Tags         admin
// @Security     SessionAuth
// @Param        id  path  string  true  "Customer id"
// @Success      204
// @Router       /v1/admin/customers/{id} [delete]
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	if err := h.admin.DeleteCustomer(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateProduct handles POST /v1/admin/products.
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.admin.CreateProduct(c.Request().Context(), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PATCH /v1/admin/products/:id.
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/products/{id} [patch]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.admin.UpdateProduct(c.Request().Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id.
//
// @Summary      Delete a product
// @Tags         admin
// @Security     SessionAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Router       /v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.admin.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
