package web

import (
	"net/http"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

func (h *Handler) listSalesOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListSalesOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []core.SalesOrder{}
	}
	writeJSON(w, orders)
}

func (h *Handler) createSalesOrder(w http.ResponseWriter, r *http.Request) {
	var req app.CreateSalesOrderRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	order, err := h.svc.CreateSalesOrder(r.Context(), req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, order, http.StatusCreated)
}

func (h *Handler) salesOrderItems(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.svc.SalesOrderItems(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []core.SalesOrderItem{}
	}
	writeJSON(w, items)
}
