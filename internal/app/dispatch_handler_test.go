package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/dispatch"
)

type handlerDirectory struct{}

func (handlerDirectory) CandidatesInCity(context.Context, string) ([]domain.DeliveryPartner, error) {
	return []domain.DeliveryPartner{{ID: 1, City: "Lahore", Area: "DHA"}}, nil
}

type handlerResolver struct{}

func (handlerResolver) ResolveAddress(context.Context, string, string) (*domain.Address, error) {
	return &domain.Address{City: "Lahore", Area: "DHA"}, nil
}

type handlerRunner struct{ calls int }

func (r *handlerRunner) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	r.calls++
	return fn(handlerTx{})
}

type handlerTx struct{}

func (handlerTx) LockPartner(_ context.Context, id int64) (*domain.DeliveryPartner, error) {
	return &domain.DeliveryPartner{ID: id}, nil
}
func (handlerTx) InsertOrder(context.Context, *domain.Order) error        { return nil }
func (handlerTx) AppendActiveOrder(context.Context, int64, string) error  { return nil }
func (handlerTx) DeleteOrder(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (handlerTx) RemoveActiveOrder(context.Context, int64, string) error  { return nil }

func TestMakeDispatchHandler_AssignsOrder(t *testing.T) {
	t.Parallel()

	runner := &handlerRunner{}
	svc := dispatch.NewService(handlerDirectory{}, handlerResolver{}, runner, nil, 1, time.Second, logx.Nop())

	h := makeDispatchHandler(svc)

	err := h(context.Background(), domain.CreateOrder{
		CustomerID: "cust_1",
		AddressID:  "addr_1",
		TotalCents: 100,
		Items:      []domain.LineItem{{ProductID: "sku", Quantity: 1, PriceCents: 100}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, runner.calls)
}

func TestMakeDispatchHandler_PropagatesPermanentError(t *testing.T) {
	t.Parallel()

	runner := &handlerRunner{}
	svc := dispatch.NewService(handlerDirectory{}, handlerResolver{}, runner, nil, 1, time.Second, logx.Nop())

	h := makeDispatchHandler(svc)

	err := h(context.Background(), domain.CreateOrder{CustomerID: "cust_1"})
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Equal(t, 0, runner.calls)
}
