package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MovementInput carries one movement request into Record. UserID and
// UserName identify the acting user and are snapshotted onto the movement.
type MovementInput struct {
	MaterialID string
	Type       MovementType
	Quantity   decimal.Decimal
	Note       string
	UserID     string
	UserName   string
}

// MovementResult is the outcome of a committed movement: the immutable
// movement record and the material with its updated balance.
type MovementResult struct {
	Movement *Movement
	Material *Material
}

// MovementService owns the stock-quantity invariant. Every balance change
// outside a direct material edit goes through Record.
type MovementService interface {
	// Record validates and applies one signed stock adjustment atomically:
	// the material row is locked, the new balance computed and written, and
	// the movement appended, all in a single database transaction. An
	// outbound movement that would drive the balance negative fails with
	// ErrInsufficientStock and leaves no trace.
	Record(ctx context.Context, in MovementInput) (*MovementResult, error)

	// List returns movements newest first, optionally filtered to one
	// material. limit <= 0 means no limit.
	List(ctx context.Context, materialID string, limit int) ([]Movement, error)
}

type movementService struct {
	pool *pgxpool.Pool
}

// NewMovementService constructs a MovementService backed by PostgreSQL.
func NewMovementService(pool *pgxpool.Pool) MovementService {
	return &movementService{pool: pool}
}

func (s *movementService) Record(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if !ValidMovementType(in.Type) {
		return nil, fmt.Errorf("%w: type must be %s or %s", ErrInvalidInput, MovementInbound, MovementOutbound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the material row. Concurrent movements against the same material
	// serialize here, so two outbound requests can never both read the same
	// starting balance.
	m := &Material{}
	err = tx.QueryRow(ctx, `
		SELECT id, barcode, name, category, color, quantity, unit, location, notes, created_at, updated_at
		FROM materials
		WHERE id = $1
		FOR UPDATE
	`, in.MaterialID).Scan(
		&m.ID, &m.Barcode, &m.Name, &m.Category, &m.Color,
		&m.Quantity, &m.Unit, &m.Location, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("material %s: %w", in.MaterialID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock material: %w", err)
	}

	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be greater than zero, got %s", ErrInvalidInput, in.Quantity)
	}

	newQty := m.Quantity
	if in.Type == MovementInbound {
		newQty = newQty.Add(in.Quantity)
	} else {
		newQty = newQty.Sub(in.Quantity)
		if newQty.IsNegative() {
			return nil, fmt.Errorf("%w: material %s has %s %s, requested %s",
				ErrInsufficientStock, m.Name, m.Quantity, m.Unit, in.Quantity)
		}
	}

	err = tx.QueryRow(ctx, `
		UPDATE materials SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`, newQty, m.ID).Scan(&m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update material balance: %w", err)
	}
	m.Quantity = newQty

	mov := &Movement{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Quantity:     in.Quantity,
		MaterialID:   m.ID,
		MaterialName: m.Name,
		UserID:       in.UserID,
		UserName:     in.UserName,
		Note:         in.Note,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO movements (id, material_id, material_name, user_id, user_name, movement_type, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, mov.ID, mov.MaterialID, mov.MaterialName, mov.UserID, mov.UserName, mov.Type, mov.Quantity, mov.Note).Scan(&mov.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert movement: %w", err)
	}

	// Single commit: balance update and movement record land together or not
	// at all.
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}

	return &MovementResult{Movement: mov, Material: m}, nil
}

func (s *movementService) List(ctx context.Context, materialID string, limit int) ([]Movement, error) {
	query := `
		SELECT id, material_id, material_name, user_id, user_name, movement_type, quantity, note, created_at
		FROM movements`
	var args []any
	if materialID != "" {
		args = append(args, materialID)
		query += " WHERE material_id = $1"
	}
	query += " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var movements []Movement
	for rows.Next() {
		var mv Movement
		if err := rows.Scan(
			&mv.ID, &mv.MaterialID, &mv.MaterialName, &mv.UserID, &mv.UserName,
			&mv.Type, &mv.Quantity, &mv.Note, &mv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, mv)
	}
	return movements, rows.Err()
}
