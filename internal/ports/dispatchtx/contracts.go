package dispatchtx

import (
	"context"

	"service-dispatch/internal/domain"
)

// Repository is the set of writes available inside an assignment transaction.
type Repository interface {
	// LockPartner loads the rider row under an exclusive lock. Returns nil
	// when the rider no longer exists.
	LockPartner(ctx context.Context, id int64) (*domain.DeliveryPartner, error)
	InsertOrder(ctx context.Context, o *domain.Order) error
	AppendActiveOrder(ctx context.Context, partnerID int64, orderID string) error
	// DeleteOrder removes an order and reports the rider it was assigned to.
	DeleteOrder(ctx context.Context, orderID string) (partnerID int64, found bool, err error)
	RemoveActiveOrder(ctx context.Context, partnerID int64, orderID string) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
