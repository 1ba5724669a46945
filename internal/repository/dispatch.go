package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo runs assignment transactions against the shared store.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// roll back on panic before re-raising
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LockPartner - load the rider row under FOR UPDATE. The row lock is the
// per-rider mutual exclusion: two assignments to the same rider serialize
// here, while assignments to different riders proceed in parallel.
func (r *TxRepo) LockPartner(ctx context.Context, id int64) (*domain.DeliveryPartner, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, name, phone, city, area, active_order_ids
        FROM delivery_partners
        WHERE id = $1
        FOR UPDATE
    `, id)

	var p domain.DeliveryPartner
	if err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.City, &p.Area, &p.ActiveOrderIDs); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock partner %d: %w", id, err)
	}
	return &p, nil
}

// InsertOrder - insert the finalized order with its assigned rider.
func (r *TxRepo) InsertOrder(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = r.tx.Exec(ctx, `
        INSERT INTO orders (id, customer_id, items, total_cents, address_id, city, area,
                            contact, assigned_partner_id, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, o.ID, o.CustomerID, items, o.TotalCents, o.AddressID, o.City, o.Area,
		o.Contact, o.AssignedPartnerID, string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order %q: %w", o.ID, err)
	}
	return nil
}

// AppendActiveOrder - append the order id to the rider's active list.
func (r *TxRepo) AppendActiveOrder(ctx context.Context, partnerID int64, orderID string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_partners
        SET active_order_ids = array_append(active_order_ids, $2),
            updated_at = now()
        WHERE id = $1
    `, partnerID, orderID)
	if err != nil {
		return fmt.Errorf("append active order %q to partner %d: %w", orderID, partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %d not found", partnerID)
	}
	return nil
}

// DeleteOrder - delete an order, reporting which rider held it.
func (r *TxRepo) DeleteOrder(ctx context.Context, orderID string) (int64, bool, error) {
	var partnerID int64
	err := r.tx.QueryRow(ctx,
		`DELETE FROM orders WHERE id = $1 RETURNING assigned_partner_id`, orderID,
	).Scan(&partnerID)
	if err != nil {
		if IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("delete order %q: %w", orderID, err)
	}
	return partnerID, true, nil
}

// RemoveActiveOrder - drop the order id from the rider's active list.
func (r *TxRepo) RemoveActiveOrder(ctx context.Context, partnerID int64, orderID string) error {
	_, err := r.tx.Exec(ctx, `
        UPDATE delivery_partners
        SET active_order_ids = array_remove(active_order_ids, $2),
            updated_at = now()
        WHERE id = $1
    `, partnerID, orderID)
	if err != nil {
		return fmt.Errorf("remove active order %q from partner %d: %w", orderID, partnerID, err)
	}
	return nil
}
