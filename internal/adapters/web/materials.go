package web

import (
	"net/http"

	"sobracorte/internal/app"
	"sobracorte/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// materialBody is the wire shape for material create and update requests.
// Field names follow the frontend contract.
type materialBody struct {
	Barcode  *string          `json:"codigo_barras"`
	Name     *string          `json:"nome"`
	Category *string          `json:"tipo"`
	Color    *string          `json:"cor"`
	Quantity *decimal.Decimal `json:"quantidade_atual"`
	Unit     *string          `json:"unidade_medida"`
	Location *string          `json:"localizacao_pavilhao"`
	Notes    *string          `json:"observacoes"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// listMaterials handles GET /api/materials with optional tipo, cor, and
// search query filters.
func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.svc.ListMaterials(r.Context(), core.MaterialFilter{
		Category: q.Get("tipo"),
		Color:    q.Get("cor"),
		Search:   q.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	materials := result.Materials
	if materials == nil {
		materials = []core.Material{}
	}
	writeJSON(w, struct {
		Materials []core.Material `json:"materials"`
	}{materials})
}

// getMaterial handles GET /api/materials/{id}.
func (h *Handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Material *core.Material `json:"material"`
	}{result.Material})
}

// createMaterial handles POST /api/materials.
func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var body materialBody
	if !decodeJSON(w, r, &body) {
		return
	}

	req := app.MaterialRequest{
		Barcode:  strOrEmpty(body.Barcode),
		Name:     strOrEmpty(body.Name),
		Category: strOrEmpty(body.Category),
		Color:    strOrEmpty(body.Color),
		Unit:     strOrEmpty(body.Unit),
		Location: strOrEmpty(body.Location),
		Notes:    strOrEmpty(body.Notes),
	}
	if body.Quantity != nil {
		req.Quantity = *body.Quantity
	}

	result, err := h.svc.CreateMaterial(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, struct {
		Message  string         `json:"message"`
		Material *core.Material `json:"material"`
	}{"Material cadastrado com sucesso", result.Material})
}

// updateMaterial handles PUT /api/materials/{id}. Absent fields keep their
// stored values.
func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	var body materialBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.UpdateMaterial(r.Context(), chi.URLParam(r, "id"), core.MaterialPatch{
		Barcode:  body.Barcode,
		Name:     body.Name,
		Category: body.Category,
		Color:    body.Color,
		Quantity: body.Quantity,
		Unit:     body.Unit,
		Location: body.Location,
		Notes:    body.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Message  string         `json:"message"`
		Material *core.Material `json:"material"`
	}{"Material atualizado com sucesso", result.Material})
}

// deleteMaterial handles DELETE /api/materials/{id}.
func (h *Handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMaterial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Message string `json:"message"`
	}{"Material removido com sucesso"})
}
