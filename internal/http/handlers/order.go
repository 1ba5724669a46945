package handlers

import (
	"errors"
	"net/http"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
)

// OrderHandler handles HTTP requests for order resources.
type OrderHandler struct {
	dispatch dispatchUsecase
	orders   ordersUsecase
	logger   logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, dispatch dispatchUsecase, orders ordersUsecase) *OrderHandler {
	return &OrderHandler{dispatch: dispatch, orders: orders, logger: logger}
}

// Create handles POST /order: it places the order and assigns a rider in one
// call. The response body carries the assignment result.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.dispatch.Assign(r.Context(), req.toModel())
	switch {
	case err == nil:
		w.Header().Set("Location", "/order/"+res.OrderID)
		writeJSON(h.logger, w, r, http.StatusCreated, assignResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrAddressNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "address not found")
	case errors.Is(err, apperr.ErrNoRiders):
		writeError(h.logger, w, r, http.StatusNotFound, "no riders available in city")
	case errors.Is(err, apperr.ErrPersistence):
		w.Header().Set("Retry-After", "1")
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "assignment temporarily unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /order/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Delete handles DELETE /order/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.orders.Delete(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "canceled"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
