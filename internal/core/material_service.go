package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MaterialFilter narrows List results. Zero value matches everything.
type MaterialFilter struct {
	Category string // exact match on category
	Color    string // case-insensitive substring
	Search   string // case-insensitive substring over name and barcode
}

// MaterialInput carries the fields for material registration.
type MaterialInput struct {
	Barcode  string
	Name     string
	Category string
	Color    string
	Quantity decimal.Decimal
	Unit     string
	Location string
	Notes    string
}

// MaterialPatch is a partial update: nil fields keep their current value.
// ID and creation timestamp are immutable.
type MaterialPatch struct {
	Barcode  *string
	Name     *string
	Category *string
	Color    *string
	Quantity *decimal.Decimal
	Unit     *string
	Location *string
	Notes    *string
}

// MaterialService provides material registration, lookup, and direct edits.
// Movement-driven balance changes live in MovementService.
type MaterialService interface {
	List(ctx context.Context, filter MaterialFilter) ([]Material, error)
	Get(ctx context.Context, id string) (*Material, error)
	Create(ctx context.Context, in MaterialInput) (*Material, error)
	// Update merges the patch over the stored record. A patched quantity
	// below zero is rejected with ErrInvalidInput.
	Update(ctx context.Context, id string, patch MaterialPatch) (*Material, error)
	// Delete removes the material. Movement history is kept; its references
	// to the deleted material become orphans by design.
	Delete(ctx context.Context, id string) error
}

type materialService struct {
	pool *pgxpool.Pool
}

// NewMaterialService constructs a MaterialService backed by PostgreSQL.
func NewMaterialService(pool *pgxpool.Pool) MaterialService {
	return &materialService{pool: pool}
}

const materialColumns = "id, barcode, name, category, color, quantity, unit, location, notes, created_at, updated_at"

func scanMaterial(row pgx.Row, m *Material) error {
	return row.Scan(
		&m.ID, &m.Barcode, &m.Name, &m.Category, &m.Color,
		&m.Quantity, &m.Unit, &m.Location, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (s *materialService) List(ctx context.Context, filter MaterialFilter) ([]Material, error) {
	query := "SELECT " + materialColumns + " FROM materials"
	var conds []string
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Color != "" {
		args = append(args, "%"+filter.Color+"%")
		conds = append(conds, fmt.Sprintf("color ILIKE $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR barcode ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []Material
	for rows.Next() {
		var m Material
		if err := scanMaterial(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (s *materialService) Get(ctx context.Context, id string) (*Material, error) {
	m := &Material{}
	err := scanMaterial(s.pool.QueryRow(ctx,
		"SELECT "+materialColumns+" FROM materials WHERE id = $1", id), m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("material %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch material: %w", err)
	}
	return m, nil
}

func (s *materialService) Create(ctx context.Context, in MaterialInput) (*Material, error) {
	if in.Barcode == "" || in.Name == "" || in.Category == "" || in.Unit == "" {
		return nil, fmt.Errorf("%w: barcode, name, category and unit are required", ErrInvalidInput)
	}
	if !ValidUnit(in.Unit) {
		return nil, fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, in.Unit)
	}
	if in.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	m := &Material{
		ID:       uuid.NewString(),
		Barcode:  in.Barcode,
		Name:     in.Name,
		Category: in.Category,
		Color:    in.Color,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Location: in.Location,
		Notes:    in.Notes,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO materials (id, barcode, name, category, color, quantity, unit, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, m.ID, m.Barcode, m.Name, m.Category, m.Color, m.Quantity, m.Unit, m.Location, m.Notes).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert material: %w", err)
	}
	return m, nil
}

func (s *materialService) Update(ctx context.Context, id string, patch MaterialPatch) (*Material, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	m := &Material{}
	err = scanMaterial(tx.QueryRow(ctx,
		"SELECT "+materialColumns+" FROM materials WHERE id = $1 FOR UPDATE", id), m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("material %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock material: %w", err)
	}

	if patch.Barcode != nil {
		m.Barcode = *patch.Barcode
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Category != nil {
		m.Category = *patch.Category
	}
	if patch.Color != nil {
		m.Color = *patch.Color
	}
	if patch.Quantity != nil {
		m.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	if patch.Location != nil {
		m.Location = *patch.Location
	}
	if patch.Notes != nil {
		m.Notes = *patch.Notes
	}

	if m.Barcode == "" || m.Name == "" || m.Category == "" {
		return nil, fmt.Errorf("%w: barcode, name and category cannot be blank", ErrInvalidInput)
	}
	if !ValidUnit(m.Unit) {
		return nil, fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, m.Unit)
	}
	if m.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	err = tx.QueryRow(ctx, `
		UPDATE materials
		SET barcode = $1, name = $2, category = $3, color = $4, quantity = $5,
		    unit = $6, location = $7, notes = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`, m.Barcode, m.Name, m.Category, m.Color, m.Quantity, m.Unit, m.Location, m.Notes, m.ID).
		Scan(&m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit material update: %w", err)
	}
	return m, nil
}

func (s *materialService) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM materials WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	return nil
}
