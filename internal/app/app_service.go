package app

import (
	"context"

	"sobracorte/internal/core"

	"github.com/xuri/excelize/v2"
)

type appService struct {
	materials core.MaterialService
	movements core.MovementService
	stats     core.StatsService
	users     core.UserService
	exports   core.ExportService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	materials core.MaterialService,
	movements core.MovementService,
	stats core.StatsService,
	users core.UserService,
	exports core.ExportService,
) ApplicationService {
	return &appService{
		materials: materials,
		movements: movements,
		stats:     stats,
		users:     users,
		exports:   exports,
	}
}

func (s *appService) RegisterUser(ctx context.Context, req RegisterRequest) (*UserResult, error) {
	u, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: u}, nil
}

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &UserSession{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (s *appService) GetUser(ctx context.Context, userID string) (*UserResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: u}, nil
}

func (s *appService) ListUsers(ctx context.Context) (*UserListResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Users: users}, nil
}

func (s *appService) UpdateUserRole(ctx context.Context, userID, role string) (*UserResult, error) {
	u, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: u}, nil
}

func (s *appService) ListMaterials(ctx context.Context, filter core.MaterialFilter) (*MaterialListResult, error) {
	materials, err := s.materials.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &MaterialListResult{Materials: materials}, nil
}

func (s *appService) GetMaterial(ctx context.Context, id string) (*MaterialResult, error) {
	m, err := s.materials.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MaterialResult{Material: m}, nil
}

func (s *appService) CreateMaterial(ctx context.Context, req MaterialRequest) (*MaterialResult, error) {
	m, err := s.materials.Create(ctx, core.MaterialInput{
		Barcode:  req.Barcode,
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &MaterialResult{Material: m}, nil
}

func (s *appService) UpdateMaterial(ctx context.Context, id string, patch core.MaterialPatch) (*MaterialResult, error) {
	m, err := s.materials.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &MaterialResult{Material: m}, nil
}

func (s *appService) DeleteMaterial(ctx context.Context, id string) error {
	return s.materials.Delete(ctx, id)
}

func (s *appService) RecordMovement(ctx context.Context, req MovementRequest) (*core.MovementResult, error) {
	return s.movements.Record(ctx, core.MovementInput{
		MaterialID: req.MaterialID,
		Type:       core.MovementType(req.Type),
		Quantity:   req.Quantity,
		Note:       req.Note,
		UserID:     req.UserID,
		UserName:   req.UserName,
	})
}

func (s *appService) ListMovements(ctx context.Context, materialID string, limit int) (*MovementListResult, error) {
	movements, err := s.movements.List(ctx, materialID, limit)
	if err != nil {
		return nil, err
	}
	return &MovementListResult{Movements: movements}, nil
}

func (s *appService) GetDashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	return s.stats.Dashboard(ctx)
}

func (s *appService) ExportMaterials(ctx context.Context) (*excelize.File, error) {
	return s.exports.MaterialsWorkbook(ctx)
}

func (s *appService) ExportMovements(ctx context.Context) (*excelize.File, error) {
	return s.exports.MovementsWorkbook(ctx)
}
