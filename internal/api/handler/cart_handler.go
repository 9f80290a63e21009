package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// CartHandler handles the active identity's cart.
type CartHandler struct {
	shop ports.ShopService
}

func NewCartHandler(shop ports.ShopService) *CartHandler {
	return &CartHandler{shop: shop}
}

// Get handles GET /v1/cart.
//
// @Summary      Current cart with totals
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	view, err := h.shop.CartView(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// AddItem handles POST /v1/cart/items. Adding a product already in the cart
// increases its quantity.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.shop.AddToCart(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// SetQuantity handles PATCH /v1/cart/items/:product_id.
//
// @Summary      Set a line's quantity (0 removes it)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id  path      string              true  "Product id"
// @Param        body        body      setQuantityRequest  true  "New quantity"
// @Success      200         {object}  cartResponse
// @Failure      409         {object}  errorResponse
// @Router       /v1/cart/items/{product_id} [patch]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.shop.SetQuantity(c.Request().Context(), c.Param("product_id"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// RemoveItem handles DELETE /v1/cart/items/:product_id.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  cartResponse
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.shop.RemoveFromCart(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.shop.ClearCart(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
