package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

type noopDirectory struct{}

func (noopDirectory) CandidatesInCity(context.Context, string) ([]domain.DeliveryPartner, error) {
	return nil, nil
}

type noopResolver struct{}

func (noopResolver) ResolveAddress(context.Context, string, string) (*domain.Address, error) {
	return nil, nil
}

type noopRunner struct{}

func (noopRunner) WithTx(context.Context, func(tx dispatchtx.Repository) error) error { return nil }

type noopReader struct{}

func (noopReader) GetByID(context.Context, string) (*domain.Order, error) { return nil, nil }

func newTestRouter() http.Handler {
	logger := logx.Nop()
	dispatchSvc := dispatch.NewService(noopDirectory{}, noopResolver{}, noopRunner{}, nil, 0, 0, logger)
	ordersSvc := orders.NewService(noopReader{}, noopRunner{}, 0, logger)

	return router.New(
		logger,
		handlers.New(logger),
		handlers.NewOrderHandler(logger, dispatchSvc, ordersSvc),
		ratelimit.New(logger, nil, nil),
	)
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "pong")
}

func TestRouter_HealthcheckHead(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_MetricsExposed(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestRouter_UnknownRoute_JSON404(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error": "route not found"}`, rr.Body.String())
}

func TestRouter_CreateOrder_Routed(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	// empty directory behind the engine: the route must answer, not 404
	body := `{
		"customer_id": "cust_1",
		"address_id": "addr_1",
		"total_cents": 100,
		"items": [{"product_id": "sku", "quantity": 1, "price_cents": 100}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "address not found")
}
