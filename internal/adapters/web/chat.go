package web

import (
	"net/http"

	"warehouse-backend/internal/app"
)

// chatMessage answers one assistant message. The assistant is stateless, so
// each request stands alone.
func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	var req app.ChatRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	reply, err := h.svc.Chat(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	type response struct {
		Reply string `json:"reply"`
	}
	writeJSON(w, response{Reply: reply})
}
