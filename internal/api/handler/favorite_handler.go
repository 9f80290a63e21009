package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// FavoriteHandler covers favorites and product ratings.
type FavoriteHandler struct {
	shop ports.ShopService
}

func NewFavoriteHandler(shop ports.ShopService) *FavoriteHandler {
	return &FavoriteHandler{shop: shop}
}

// List handles GET /v1/favorites.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {array}   domain.Favorite
// @Failure      401  {object}  errorResponse
// @Router       /v1/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	favs, err := h.shop.Favorites(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favs)
}

// Add handles POST /v1/favorites.
//
// @Summary      Save a product as favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      addFavoriteRequest  true  "Product"
// @Success      201   {object}  domain.Favorite
// @Failure      401   {object}  errorResponse
// @Router       /v1/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	fav, err := h.shop.AddFavorite(c.Request().Context(), req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fav)
}

// Remove handles DELETE /v1/favorites/:id.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Param        id  path  string  true  "Favorite id"
// @Success      204
// @Router       /v1/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	if err := h.shop.RemoveFavorite(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Rate handles POST /v1/ratings.
//
// @Summary      Rate a product
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      rateRequest  true  "Rating"
// @Success      202   {object}  acceptedResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/ratings [post]
func (h *FavoriteHandler) Rate(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.shop.Rate(c.Request().Context(), domain.Rating{
		ProductID: req.ProductID,
		Score:     req.Score,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "rating submitted"})
}
