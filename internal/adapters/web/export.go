package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportMaterials handles GET /api/export/materials — current inventory as
// an XLSX download.
func (h *Handler) exportMaterials(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.ExportMaterials(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.sendWorkbook(w, r, f, "materiais")
}

// exportMovements handles GET /api/export/transactions — movement history as
// an XLSX download.
func (h *Handler) exportMovements(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.ExportMovements(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.sendWorkbook(w, r, f, "movimentacoes")
}

func (h *Handler) sendWorkbook(w http.ResponseWriter, r *http.Request, f *excelize.File, prefix string) {
	defer f.Close()

	filename := prefix + "_" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := f.WriteTo(w); err != nil {
		// Headers are already sent; all we can do is log.
		h.log.Error("failed to stream workbook",
			zap.Error(err),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	}
}
