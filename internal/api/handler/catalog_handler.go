package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// CatalogHandler serves the product listing and detail pages.
type CatalogHandler struct {
	shop ports.ShopService
}

func NewCatalogHandler(shop ports.ShopService) *CatalogHandler {
	return &CatalogHandler{shop: shop}
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      503  {object}  errorResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.shop.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.shop.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
