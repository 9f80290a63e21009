package backend

import (
	"strings"
	"time"

	"github.com/99minutos/storefront/internal/core/domain"
)

// The backend identifies documents by either "id" or "_id".

type profileDTO struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

func (d profileDTO) toDomain() domain.Profile {
	return domain.Profile{
		ID:      firstNonEmpty(d.ID, d.MongoID),
		Email:   d.Email,
		Name:    d.Name,
		Surname: d.Surname,
		Phone:   d.Phone,
		Address: d.Address,
		Role:    d.Role,
	}
}

type productDTO struct {
	ID           string   `json:"id"`
	MongoID      string   `json:"_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Stock        int      `json:"stock"`
	ShippingCost *float64 `json:"shipping_cost"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
}

func (d productDTO) toDomain() domain.Product {
	p := domain.Product{
		ID:          firstNonEmpty(d.ID, d.MongoID),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Image:       d.Image,
		Category:    d.Category,
	}
	if d.ShippingCost != nil {
		p.ShippingCost = *d.ShippingCost
	}
	return p
}

func productsToDomain(in []productDTO) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, d := range in {
		out[i] = d.toDomain()
	}
	return out
}

type orderItemDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type orderDTO struct {
	ID           string         `json:"id"`
	MongoID      string         `json:"_id"`
	CustomerID   string         `json:"customer_id"`
	Items        []orderItemDTO `json:"items"`
	Subtotal     float64        `json:"subtotal"`
	ShippingCost float64        `json:"shipping_cost"`
	Total        float64        `json:"total"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"created_at"`
}

func (d orderDTO) toDomain() domain.Order {
	items := make([]domain.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		}
	}
	return domain.Order{
		ID:         firstNonEmpty(d.ID, d.MongoID),
		CustomerID: d.CustomerID,
		Items:      items,
		Subtotal:   d.Subtotal,
		Shipping:   d.ShippingCost,
		Total:      d.Total,
		Status:     domain.OrderStatus(d.Status),
		CreatedAt:  parseTime(d.CreatedAt),
	}
}

func ordersToDomain(in []orderDTO) []domain.Order {
	out := make([]domain.Order, len(in))
	for i, d := range in {
		out[i] = d.toDomain()
	}
	return out
}

type createOrderDTO struct {
	Items        []orderItemDTO `json:"items"`
	Subtotal     float64        `json:"subtotal"`
	ShippingCost float64        `json:"shipping_cost"`
	Total        float64        `json:"total"`
}

type favoriteDTO struct {
	ID        string `json:"id"`
	MongoID   string `json:"_id"`
	ProductID string `json:"product_id"`
}

func (d favoriteDTO) toDomain() domain.Favorite {
	return domain.Favorite{ID: firstNonEmpty(d.ID, d.MongoID), ProductID: d.ProductID}
}

type tokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type checkoutDTO struct {
	CheckoutURL string `json:"checkout_url"`
}

// timeLayouts are tried in order; the backend emits ISO-8601 with or
// without a zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
