package web

import (
	"net/http"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	writeJSON(w, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProductRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, product, http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req app.UpdateProductRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), id, req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id, h.actor(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (h *Handler) upsertProductSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req app.ProductSettingsRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	settings, err := h.svc.UpsertProductSettings(r.Context(), id, req, h.actor(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, settings)
}
