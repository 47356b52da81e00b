package app

import (
	"context"

	"sobracorte/internal/core"

	"github.com/xuri/excelize/v2"
)

// ApplicationService is the single interface every adapter calls. All
// Material/Movement/User invariants live behind it, so there is exactly one
// implementation of the business rules no matter how many frontends exist.
// Implementations contain no display logic of any kind.
type ApplicationService interface {
	// RegisterUser creates an account. The first account on a fresh install
	// becomes admin; later ones start read-only.
	RegisterUser(ctx context.Context, req RegisterRequest) (*UserResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID string) (*UserResult, error)

	// ListUsers returns all accounts, newest first. Admin surface.
	ListUsers(ctx context.Context) (*UserListResult, error)

	// UpdateUserRole sets a user's role. Admin surface; the only code path
	// that ever changes a role.
	UpdateUserRole(ctx context.Context, userID, role string) (*UserResult, error)

	// ListMaterials returns materials matching the filter, newest first.
	ListMaterials(ctx context.Context, filter core.MaterialFilter) (*MaterialListResult, error)

	// GetMaterial returns a single material by ID.
	GetMaterial(ctx context.Context, id string) (*MaterialResult, error)

	// CreateMaterial registers a new material.
	CreateMaterial(ctx context.Context, req MaterialRequest) (*MaterialResult, error)

	// UpdateMaterial merges a partial update over a material.
	UpdateMaterial(ctx context.Context, id string, patch core.MaterialPatch) (*MaterialResult, error)

	// DeleteMaterial removes a material, leaving its movement history behind.
	DeleteMaterial(ctx context.Context, id string) error

	// RecordMovement applies one stock adjustment atomically and returns the
	// created movement together with the updated material.
	RecordMovement(ctx context.Context, req MovementRequest) (*core.MovementResult, error)

	// ListMovements returns movement history, newest first, optionally
	// scoped to one material. limit <= 0 means no limit.
	ListMovements(ctx context.Context, materialID string, limit int) (*MovementListResult, error)

	// GetDashboardStats computes the dashboard counters at query time.
	GetDashboardStats(ctx context.Context) (*core.DashboardStats, error)

	// ExportMaterials and ExportMovements build spreadsheet snapshots.
	ExportMaterials(ctx context.Context) (*excelize.File, error)
	ExportMovements(ctx context.Context) (*excelize.File, error)
}
