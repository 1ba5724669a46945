package repository

import (
	"context"
	"fmt"

	"service-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AddressRepo reads the customer address book from the shared store. Used
// when the service runs next to the storefront database; deployments without
// DB access resolve addresses through the customers gateway instead.
type AddressRepo struct{ db *pgxpool.Pool }

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(db *pgxpool.Pool) *AddressRepo { return &AddressRepo{db: db} }

// ResolveAddress returns the customer's address by id, or nil when the
// customer has no such address.
func (r *AddressRepo) ResolveAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error) {
	var a domain.Address
	err := r.db.QueryRow(ctx, `
        SELECT address_line, area, city, postal_code, is_default
        FROM customer_addresses
        WHERE customer_id = $1 AND id = $2
    `, customerID, addressID).Scan(&a.AddressLine, &a.Area, &a.City, &a.PostalCode, &a.IsDefault)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve address %q for customer %q: %w", addressID, customerID, err)
	}
	return &a, nil
}
