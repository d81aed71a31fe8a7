package web

import (
	"net/http"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.svc.ListLocations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if locations == nil {
		locations = []core.Location{}
	}
	writeJSON(w, locations)
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req app.CreateLocationRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	location, err := h.svc.CreateLocation(r.Context(), req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, location, http.StatusCreated)
}

func (h *Handler) stockByLocation(w http.ResponseWriter, r *http.Request) {
	stock, err := h.svc.StockByLocation(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if stock == nil {
		stock = []core.LocationStock{}
	}
	writeJSON(w, stock)
}

func (h *Handler) setLocationStock(w http.ResponseWriter, r *http.Request) {
	var req app.SetLocationStockRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.SetLocationStock(r.Context(), req, h.actor(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
