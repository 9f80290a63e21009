package handler

import (
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func toCartResponse(v *ports.CartView) cartResponse {
	items := make([]lineItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = lineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.Total(),
			Image:     it.Image,
		}
	}
	return cartResponse{
		Items:               items,
		ItemCount:           v.Totals.ItemCount,
		Subtotal:            v.Totals.Subtotal,
		Shipping:            v.Totals.Shipping,
		Total:               v.Totals.Total,
		FreeShippingFrom:    domain.FreeShippingThreshold,
		FreeShippingApplied: len(v.Items) > 0 && v.Totals.Subtotal >= domain.FreeShippingThreshold,
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	resp := orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Items:      items,
		Subtotal:   o.Subtotal,
		Shipping:   o.Shipping,
		Total:      o.Total,
	}
	if !o.CreatedAt.IsZero() {
		t := o.CreatedAt.UTC()
		resp.CreatedAt = &t
	}
	return resp
}

func toOrderList(orders []domain.Order) orderListResponse {
	data := make([]orderResponse, len(orders))
	for i, o := range orders {
		data[i] = toOrderResponse(o)
	}
	return orderListResponse{Data: data, Total: len(data)}
}

func toProductInput(r productRequest) domain.ProductInput {
	return domain.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Stock:        r.Stock,
		ShippingCost: r.ShippingCost,
		Image:        r.Image,
		Category:     r.Category,
	}
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: s.IsAuthenticated(),
		IsAdmin:       s.IsAuthenticated() && s.Identity.IsAdmin(),
		Identity:      s.Identity,
	}
}
