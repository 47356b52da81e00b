package web

import "net/http"

// stats handles GET /api/stats — dashboard counters computed at query time.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
