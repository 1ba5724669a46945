package dispatch

import (
	"context"

	"service-dispatch/internal/domain"
)

// PartnerDirectory exposes read access to the rider directory.
type PartnerDirectory interface {
	CandidatesInCity(ctx context.Context, city string) ([]domain.DeliveryPartner, error)
}

// AddressResolver maps a customer's address id to the address itself.
// A nil address means the customer has no such address.
type AddressResolver interface {
	ResolveAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error)
}

type counter interface {
	Inc()
}
