package web

import (
	"net/http"

	"warehouse-backend/internal/core"
)

func (h *Handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.AuditTrail(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if logs == nil {
		logs = []core.AuditLog{}
	}
	writeJSON(w, logs)
}

func (h *Handler) lowStockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.LowStockAlerts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if alerts == nil {
		alerts = []core.LowStockAlert{}
	}
	writeJSON(w, alerts)
}

func (h *Handler) inventoryForecast(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "productId")
	if !ok {
		return
	}
	forecast, err := h.svc.UsageForecast(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, forecast)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, categories)
}
