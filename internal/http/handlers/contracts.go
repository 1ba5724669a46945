package handlers

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

type dispatchUsecase interface {
	Assign(ctx context.Context, in domain.CreateOrder) (domain.AssignResult, error)
}

// NewDispatchUsecase wires a dispatch Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type ordersUsecase interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// NewOrdersUsecase wires an orders Service into an ordersUsecase.
func NewOrdersUsecase(svc *orders.Service) ordersUsecase {
	return svc
}
