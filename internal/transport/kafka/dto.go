package kafka

import (
	"strings"

	"service-dispatch/internal/domain"
)

// ItemDTO is one order line on the wire.
type ItemDTO struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// EventDTO is the order.created event payload.
type EventDTO struct {
	CustomerID string    `json:"customer_id"`
	AddressID  string    `json:"address_id"`
	Contact    string    `json:"contact,omitempty"`
	TotalCents int64     `json:"total_cents"`
	Items      []ItemDTO `json:"items"`
}

// ToDomain converts EventDTO to a domain.CreateOrder.
func ToDomain(dto EventDTO) domain.CreateOrder {
	items := make([]domain.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, domain.LineItem{
			ProductID:  strings.TrimSpace(it.ProductID),
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return domain.CreateOrder{
		CustomerID: strings.TrimSpace(dto.CustomerID),
		AddressID:  strings.TrimSpace(dto.AddressID),
		Contact:    strings.TrimSpace(dto.Contact),
		TotalCents: dto.TotalCents,
		Items:      items,
	}
}
