package domain

// Product is the backend's catalog entry as the storefront displays it.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	ShippingCost float64 `json:"shipping_cost"`
	Image        string  `json:"image,omitempty"`
	Category     string  `json:"category,omitempty"`
}

// ProductInput is the admin payload for creating or updating a product.
type ProductInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	ShippingCost float64 `json:"shipping_cost"`
	Image        string  `json:"image,omitempty"`
	Category     string  `json:"category,omitempty"`
}

// Favorite marks a product the customer saved.
type Favorite struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
}

// Rating is a customer's score for a product.
type Rating struct {
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
}
