package web

import (
	"net/http"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if customers == nil {
		customers = []core.Customer{}
	}
	writeJSON(w, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req app.CustomerRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	customer, err := h.svc.CreateCustomer(r.Context(), req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, customer, http.StatusCreated)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req app.CustomerRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	customer, err := h.svc.UpdateCustomer(r.Context(), id, req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(r.Context(), id, h.actor(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	orders, err := h.svc.CustomerOrders(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []core.SalesOrder{}
	}
	writeJSON(w, orders)
}
