package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// Login posts the credentials form-encoded and returns the access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out tokenDTO
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login: response without access_token")
	}
	return out.AccessToken, nil
}

// Me returns the profile behind token. A 401 matches domain.ErrUnauthorized.
func (c *Client) Me(ctx context.Context, token string) (*domain.Profile, error) {
	var out profileDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", token: token}, &out); err != nil {
		return nil, err
	}
	p := out.toDomain()
	return &p, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	req, err := c.newJSONRequest(http.MethodPost, "/customers", "", in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
