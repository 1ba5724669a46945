package handlers

import (
	"time"

	"service-dispatch/internal/domain"
)

type lineItemDTO struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

type createOrderRequest struct {
	CustomerID string        `json:"customer_id"`
	Items      []lineItemDTO `json:"items"`
	TotalCents int64         `json:"total_cents"`
	AddressID  string        `json:"address_id"`
	Contact    string        `json:"contact,omitempty"`
}

type assignResponse struct {
	OrderID   string             `json:"order_id"`
	PartnerID int64              `json:"partner_id"`
	City      string             `json:"city"`
	Area      string             `json:"area"`
	Status    domain.OrderStatus `json:"status"`
}

type orderDTO struct {
	ID                string             `json:"id"`
	CustomerID        string             `json:"customer_id"`
	Items             []lineItemDTO      `json:"items"`
	TotalCents        int64              `json:"total_cents"`
	AddressID         string             `json:"address_id"`
	City              string             `json:"city"`
	Area              string             `json:"area"`
	Contact           string             `json:"contact,omitempty"`
	AssignedPartnerID int64              `json:"assigned_partner_id"`
	Status            domain.OrderStatus `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
}
