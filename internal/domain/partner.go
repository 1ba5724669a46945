package domain

// DeliveryPartner represents a rider registered with the platform.
// Registration and profile updates happen in a separate flow; the dispatch
// engine only reads partners and appends to ActiveOrderIDs inside the
// assignment transaction.
type DeliveryPartner struct {
	ID             int64
	Name           string
	Phone          string
	City           string
	Area           string
	ActiveOrderIDs []string
}
