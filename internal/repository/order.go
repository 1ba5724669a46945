package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"service-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepo reads persisted orders.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// GetByID - returns an order by its ID, or nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var (
		o      domain.Order
		items  []byte
		status string
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, customer_id, items, total_cents, address_id, city, area,
               contact, assigned_partner_id, status, created_at
        FROM orders
        WHERE id = $1
    `, id).Scan(&o.ID, &o.CustomerID, &items, &o.TotalCents, &o.AddressID, &o.City,
		&o.Area, &o.Contact, &o.AssignedPartnerID, &status, &o.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items of order %q: %w", id, err)
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
