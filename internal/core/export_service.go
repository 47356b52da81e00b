package core

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService builds spreadsheet snapshots of the collections for offline
// analysis. Workbooks are assembled in memory and streamed by the caller.
type ExportService interface {
	MaterialsWorkbook(ctx context.Context) (*excelize.File, error)
	MovementsWorkbook(ctx context.Context) (*excelize.File, error)
}

type exportService struct {
	materials MaterialService
	movements MovementService
}

// NewExportService constructs an ExportService reading through the domain
// services, so exports see exactly what the API serves.
func NewExportService(materials MaterialService, movements MovementService) ExportService {
	return &exportService{materials: materials, movements: movements}
}

func (s *exportService) MaterialsWorkbook(ctx context.Context) (*excelize.File, error) {
	materials, err := s.materials.List(ctx, MaterialFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id", "codigo_barras", "nome", "tipo", "cor",
		"quantidade_atual", "unidade_medida", "localizacao_pavilhao", "data_cadastro",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for _, m := range materials {
		values := []interface{}{
			m.ID, m.Barcode, m.Name, m.Category, m.Color,
			m.Quantity.String(), m.Unit, m.Location, m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write material row: %w", err)
		}
		row++
	}
	return f, nil
}

func (s *exportService) MovementsWorkbook(ctx context.Context) (*excelize.File, error) {
	movements, err := s.movements.List(ctx, "", 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id", "type", "quantidade", "material_id", "material_nome",
		"user_id", "user_nome", "observacoes", "data_hora",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for _, mv := range movements {
		values := []interface{}{
			mv.ID, string(mv.Type), mv.Quantity.String(), mv.MaterialID, mv.MaterialName,
			mv.UserID, mv.UserName, mv.Note, mv.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write movement row: %w", err)
		}
		row++
	}
	return f, nil
}
