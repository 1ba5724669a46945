package orders

import (
	"context"

	"service-dispatch/internal/domain"
)

// orderReader defines the read access required by the business layer.
type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
