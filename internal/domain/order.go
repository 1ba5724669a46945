package domain

import "time"

// LineItem is a single order position. Prices are integer cents.
type LineItem struct {
	ProductID  string
	Quantity   int
	PriceCents int64
}

// Address is the value-copy of a customer address taken at assignment time.
// Addresses can change later; the order keeps the city/area it was matched on.
type Address struct {
	AddressLine string
	Area        string
	City        string
	PostalCode  string
	IsDefault   bool
}

// CreateOrder is the validated order payload handed to the dispatch engine by
// the order creation flow.
type CreateOrder struct {
	CustomerID string
	Items      []LineItem
	TotalCents int64
	AddressID  string
	Contact    string
}

// Order is a persisted order. AssignedPartnerID is always set: an order is
// only written as part of a successful assignment.
type Order struct {
	ID                string
	CustomerID        string
	Items             []LineItem
	TotalCents        int64
	AddressID         string
	City              string
	Area              string
	Contact           string
	AssignedPartnerID int64
	Status            OrderStatus
	CreatedAt         time.Time
}

// AssignResult - struct representing the outcome of a dispatch.
type AssignResult struct {
	OrderID   string
	PartnerID int64
	City      string
	Area      string
	Status    OrderStatus
}
