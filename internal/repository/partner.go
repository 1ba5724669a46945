package repository

import (
	"context"
	"fmt"

	"service-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PartnerRepo represents the delivery partner directory.
type PartnerRepo struct{ db *pgxpool.Pool }

// NewPartnerRepo creates a new PartnerRepo.
func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo { return &PartnerRepo{db: db} }

// Get - returns a delivery partner by its ID.
func (r *PartnerRepo) Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error) {
	var p domain.DeliveryPartner
	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, city, area, active_order_ids FROM delivery_partners WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Phone, &p.City, &p.Area, &p.ActiveOrderIDs)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner %d: %w", id, err)
	}
	return &p, nil
}

// CandidatesInCity returns every partner whose service city equals city,
// in directory order (by id). City comparison is exact and case-sensitive;
// an empty result is not an error.
func (r *PartnerRepo) CandidatesInCity(ctx context.Context, city string) ([]domain.DeliveryPartner, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name, phone, city, area, active_order_ids
        FROM delivery_partners
        WHERE city = $1
        ORDER BY id
    `, city)
	if err != nil {
		return nil, fmt.Errorf("candidates in city %q: %w", city, err)
	}
	defer rows.Close()

	out := make([]domain.DeliveryPartner, 0)
	for rows.Next() {
		var p domain.DeliveryPartner
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.City, &p.Area, &p.ActiveOrderIDs); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
