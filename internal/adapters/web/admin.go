package web

import (
	"net/http"

	"sobracorte/internal/core"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// listUsers handles GET /api/admin/users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	users := result.Users
	if users == nil {
		users = []core.User{}
	}
	writeJSON(w, struct {
		Users []core.User `json:"users"`
	}{users})
}

// updateUserRole handles PUT /api/admin/users/{id}/role. Every role change
// goes through here so each one is an explicit, logged admin action.
func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	targetID := chi.URLParam(r, "id")
	result, err := h.svc.UpdateUserRole(r.Context(), targetID, body.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if claims := authFromContext(r.Context()); claims != nil {
		h.log.Info("user role changed",
			zap.String("admin_id", claims.UserID),
			zap.String("target_id", targetID),
			zap.String("new_role", body.Role),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	}

	writeJSON(w, struct {
		Message string     `json:"message"`
		User    *core.User `json:"user"`
	}{"Permissão atualizada com sucesso", result.User})
}
