package domain

import "regexp"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of possible order statuses. The dispatch engine only ever creates
// orders as StatusAssigned; later transitions belong to the rider flow.
const (
	StatusAssigned  OrderStatus = "assigned"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

var allowedStatuses = [...]OrderStatus{
	StatusAssigned, StatusDelivered, StatusCanceled,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// reContact is a regex to validate contact numbers
var reContact = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// ValidateContact validates the contact number format
func ValidateContact(s string) bool {
	return reContact.MatchString(s)
}
