package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DashboardStats is the flat counters object behind the dashboard screen.
type DashboardStats struct {
	TotalMaterials int `json:"total_materials"`
	LowStockCount  int `json:"low_stock_count"`
	TodayMovements int `json:"today_transactions"`
	TotalInbound   int `json:"total_entradas"`
	TotalOutbound  int `json:"total_saidas"`
}

// StatsService provides read-only aggregation over materials and movements.
type StatsService interface {
	// Dashboard computes all counters at query time. "Low stock" means
	// quantity strictly below the configured threshold; "today" is the
	// database server's calendar day.
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	pool              *pgxpool.Pool
	lowStockThreshold decimal.Decimal
}

// NewStatsService constructs a StatsService. The low-stock threshold is
// fixed per deployment.
func NewStatsService(pool *pgxpool.Pool, lowStockThreshold decimal.Decimal) StatsService {
	return &statsService{pool: pool, lowStockThreshold: lowStockThreshold}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// Aggregation happens in SQL; the full collections are never loaded into
	// memory.
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE quantity < $1)
		FROM materials
	`, s.lowStockThreshold).Scan(&stats.TotalMaterials, &stats.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate materials: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
		       COUNT(*) FILTER (WHERE movement_type = $1),
		       COUNT(*) FILTER (WHERE movement_type = $2)
		FROM movements
	`, MovementInbound, MovementOutbound).Scan(&stats.TodayMovements, &stats.TotalInbound, &stats.TotalOutbound)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate movements: %w", err)
	}

	return stats, nil
}
