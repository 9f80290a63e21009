package domain

// FreeShippingThreshold is the subtotal from which shipping is waived.
const FreeShippingThreshold = 300.00

// LineItem is one product entry in a cart. UnitPrice is snapshotted when the
// product is first added and never re-fetched.
type LineItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Total is the line's unit price times quantity.
func (li LineItem) Total() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Totals are the numbers checkout needs.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// Subtotal sums unit price times quantity over items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Total()
	}
	return sum
}

// ItemCount sums quantities over items.
func ItemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// ShippingCharge returns the single most expensive per-unit shipping cost
// among the present items, charged once. Products missing from shippingCosts
// ship for free. At or above FreeShippingThreshold the charge is zero.
func ShippingCharge(items []LineItem, shippingCosts map[string]float64) float64 {
	if len(items) == 0 || Subtotal(items) >= FreeShippingThreshold {
		return 0
	}
	var highest float64
	for _, it := range items {
		if c := shippingCosts[it.ProductID]; c > highest {
			highest = c
		}
	}
	return highest
}

// PriceCart computes subtotal, shipping and grand total for items.
func PriceCart(items []LineItem, shippingCosts map[string]float64) Totals {
	subtotal := Subtotal(items)
	shipping := ShippingCharge(items, shippingCosts)
	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
		ItemCount: ItemCount(items),
	}
}
