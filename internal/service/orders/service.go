package orders

import (
	"context"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Service coordinates order lookups and cancellations.
type Service struct {
	reader           orderReader
	repo             dispatchtx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an orders Service.
func NewService(reader orderReader, repo dispatchtx.Runner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{reader: reader, repo: repo, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	o, err := s.reader.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// Delete cancels an order. The order row and the rider's active-order entry
// are removed in one transaction so neither side can observe a half-canceled
// order.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		partnerID, found, err := tx.DeleteOrder(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrNotFound
		}
		if partnerID == 0 {
			return nil
		}
		return tx.RemoveActiveOrder(ctx, partnerID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order canceled", logx.String("order_id", id))
	return nil
}
