package web

import (
	"errors"
	"net/http"
	"strconv"

	"sobracorte/internal/app"
	"sobracorte/internal/core"

	"github.com/shopspring/decimal"
)

// createMovement handles POST /api/transactions — the single entry point for
// stock balance changes. The acting user's identity comes from the session
// token, never from the request body.
func (h *Handler) createMovement(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	var body struct {
		MaterialID string          `json:"material_id"`
		Type       string          `json:"type"`
		Quantity   decimal.Decimal `json:"quantidade"`
		Notes      string          `json:"observacoes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.RecordMovement(r.Context(), app.MovementRequest{
		MaterialID: body.MaterialID,
		Type:       body.Type,
		Quantity:   body.Quantity,
		Note:       body.Notes,
		UserID:     claims.UserID,
		UserName:   claims.Name,
	})
	if err != nil {
		if errors.Is(err, core.ErrInsufficientStock) {
			movementsRejectedTotal.Inc()
		}
		writeServiceError(w, r, err)
		return
	}

	movementsTotal.WithLabelValues(string(result.Movement.Type)).Inc()
	writeJSONStatus(w, http.StatusCreated, struct {
		Message     string         `json:"message"`
		Transaction *core.Movement `json:"transaction"`
		Material    *core.Material `json:"material"`
	}{"Movimentação registrada com sucesso", result.Movement, result.Material})
}

// listMovements handles GET /api/transactions with optional material_id and
// limit query parameters. limit defaults to 100.
func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 100
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, "limit must be a positive integer", "INVALID_INPUT", http.StatusBadRequest)
			return
		}
		limit = n
	}

	result, err := h.svc.ListMovements(r.Context(), q.Get("material_id"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	movements := result.Movements
	if movements == nil {
		movements = []core.Movement{}
	}
	writeJSON(w, struct {
		Transactions []core.Movement `json:"transactions"`
	}{movements})
}
