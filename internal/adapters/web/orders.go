package web

import (
	"net/http"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []core.Order{}
	}
	writeJSON(w, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req app.CreateOrderRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, order, http.StatusCreated)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req app.CreateOrderRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	order, err := h.svc.UpdateOrder(r.Context(), id, req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), id, h.actor(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
