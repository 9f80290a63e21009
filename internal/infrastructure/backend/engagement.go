package backend

import (
	"context"
	"net/http"

	"github.com/99minutos/storefront/internal/core/domain"
)

func (c *Client) ListFavorites(ctx context.Context, token string) ([]domain.Favorite, error) {
	var out []favoriteDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/favorites", token: token}, &out); err != nil {
		return nil, err
	}
	favs := make([]domain.Favorite, len(out))
	for i, d := range out {
		favs[i] = d.toDomain()
	}
	return favs, nil
}

func (c *Client) AddFavorite(ctx context.Context, token, productID string) (*domain.Favorite, error) {
	req, err := c.newJSONRequest(http.MethodPost, "/favorites", token, map[string]string{"product_id": productID})
	if err != nil {
		return nil, err
	}
	var out favoriteDTO
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	fav := out.toDomain()
	if fav.ProductID == "" {
		fav.ProductID = productID
	}
	return &fav, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, token, favoriteID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/favorites/" + escape(favoriteID), token: token}, nil)
}

func (c *Client) Rate(ctx context.Context, token string, rating domain.Rating) error {
	req, err := c.newJSONRequest(http.MethodPost, "/rating", token, rating)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
