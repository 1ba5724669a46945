package handlers

import "service-dispatch/internal/domain"

func (r createOrderRequest) toModel() domain.CreateOrder {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.LineItem{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return domain.CreateOrder{
		CustomerID: r.CustomerID,
		Items:      items,
		TotalCents: r.TotalCents,
		AddressID:  r.AddressID,
		Contact:    r.Contact,
	}
}

func assignResultToResponse(res domain.AssignResult) assignResponse {
	return assignResponse{
		OrderID:   res.OrderID,
		PartnerID: res.PartnerID,
		City:      res.City,
		Area:      res.Area,
		Status:    res.Status,
	}
}

func orderToResponse(o *domain.Order) orderDTO {
	items := make([]lineItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lineItemDTO{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return orderDTO{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		Items:             items,
		TotalCents:        o.TotalCents,
		AddressID:         o.AddressID,
		City:              o.City,
		Area:              o.Area,
		Contact:           o.Contact,
		AssignedPartnerID: o.AssignedPartnerID,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
	}
}
