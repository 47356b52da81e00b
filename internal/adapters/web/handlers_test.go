package web_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sobracorte/internal/adapters/web"
	"sobracorte/internal/app"
	"sobracorte/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const testSecret = "test-secret"

// stubService is an in-memory ApplicationService for handler tests. Each
// field, when set, overrides the default canned behavior.
type stubService struct {
	recordMovementErr error
	authenticateErr   error
	movementsRecorded []app.MovementRequest
}

func (s *stubService) RegisterUser(ctx context.Context, req app.RegisterRequest) (*app.UserResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", core.ErrInvalidInput)
	}
	return &app.UserResult{User: &core.User{
		ID: "u-1", Name: req.Name, Email: req.Email, Role: core.RoleAdmin, IsActive: true,
	}}, nil
}

func (s *stubService) AuthenticateUser(ctx context.Context, email, password string) (*app.UserSession, error) {
	if s.authenticateErr != nil {
		return nil, s.authenticateErr
	}
	return &app.UserSession{UserID: "u-1", Name: "Ana", Email: email, Role: core.RoleAdmin}, nil
}

func (s *stubService) GetUser(ctx context.Context, userID string) (*app.UserResult, error) {
	return &app.UserResult{User: &core.User{ID: userID, Name: "Ana", Role: core.RoleAdmin, IsActive: true}}, nil
}

func (s *stubService) ListUsers(ctx context.Context) (*app.UserListResult, error) {
	return &app.UserListResult{Users: []core.User{{ID: "u-1", Name: "Ana", Role: core.RoleAdmin}}}, nil
}

func (s *stubService) UpdateUserRole(ctx context.Context, userID, role string) (*app.UserResult, error) {
	if !core.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", core.ErrInvalidInput, role)
	}
	return &app.UserResult{User: &core.User{ID: userID, Name: "Bruno", Role: role}}, nil
}

func (s *stubService) ListMaterials(ctx context.Context, filter core.MaterialFilter) (*app.MaterialListResult, error) {
	return &app.MaterialListResult{}, nil
}

func (s *stubService) GetMaterial(ctx context.Context, id string) (*app.MaterialResult, error) {
	return nil, fmt.Errorf("material %s: %w", id, core.ErrNotFound)
}

func (s *stubService) CreateMaterial(ctx context.Context, req app.MaterialRequest) (*app.MaterialResult, error) {
	return &app.MaterialResult{Material: &core.Material{ID: "m-1", Name: req.Name, Unit: req.Unit}}, nil
}

func (s *stubService) UpdateMaterial(ctx context.Context, id string, patch core.MaterialPatch) (*app.MaterialResult, error) {
	return &app.MaterialResult{Material: &core.Material{ID: id}}, nil
}

func (s *stubService) DeleteMaterial(ctx context.Context, id string) error { return nil }

func (s *stubService) RecordMovement(ctx context.Context, req app.MovementRequest) (*core.MovementResult, error) {
	if s.recordMovementErr != nil {
		return nil, s.recordMovementErr
	}
	s.movementsRecorded = append(s.movementsRecorded, req)
	return &core.MovementResult{
		Movement: &core.Movement{
			ID: "mov-1", Type: core.MovementType(req.Type), Quantity: req.Quantity,
			MaterialID: req.MaterialID, MaterialName: "Chapa MDF",
			UserID: req.UserID, UserName: req.UserName, CreatedAt: time.Now(),
		},
		Material: &core.Material{ID: req.MaterialID, Name: "Chapa MDF", Quantity: decimal.NewFromInt(20), Unit: "un"},
	}, nil
}

func (s *stubService) ListMovements(ctx context.Context, materialID string, limit int) (*app.MovementListResult, error) {
	return &app.MovementListResult{}, nil
}

func (s *stubService) GetDashboardStats(ctx context.Context) (*core.DashboardStats, error) {
	return &core.DashboardStats{TotalMaterials: 4}, nil
}

func (s *stubService) ExportMaterials(ctx context.Context) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func (s *stubService) ExportMovements(ctx context.Context) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func newTestServer(t *testing.T, svc app.ApplicationService) http.Handler {
	t.Helper()
	return web.NewHandler(svc, web.Options{JWTSecret: testSecret})
}

// makeToken signs a session token the same way the login handler does.
func makeToken(t *testing.T, userID, name, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func doRequest(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth_Public(t *testing.T) {
	handler := newTestServer(t, &stubService{})
	rec := doRequest(handler, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	rec := doRequest(handler, http.MethodGet, "/api/materials", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "UNAUTHORIZED" {
		t.Errorf("Expected code UNAUTHORIZED, got %v", body["code"])
	}

	rec = doRequest(handler, http.MethodGet, "/api/materials", "not-a-jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestCreateMovement_Success(t *testing.T) {
	svc := &stubService{}
	handler := newTestServer(t, svc)
	token := makeToken(t, "u-7", "Carlos", core.RoleMover)

	rec := doRequest(handler, http.MethodPost, "/api/transactions", token,
		`{"material_id":"m-1","type":"ENTRADA","quantidade":"4.5","observacoes":"recebimento"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["message"] != "Movimentação registrada com sucesso" {
		t.Errorf("Unexpected message: %v", body["message"])
	}
	if _, ok := body["transaction"]; !ok {
		t.Error("Expected transaction in response")
	}
	if _, ok := body["material"]; !ok {
		t.Error("Expected updated material in response")
	}

	// The acting user comes from the token, never from the body.
	if len(svc.movementsRecorded) != 1 {
		t.Fatalf("Expected 1 recorded movement, got %d", len(svc.movementsRecorded))
	}
	if got := svc.movementsRecorded[0]; got.UserID != "u-7" || got.UserName != "Carlos" {
		t.Errorf("Expected user identity from token, got %+v", got)
	}
}

func TestCreateMovement_InsufficientStock(t *testing.T) {
	svc := &stubService{
		recordMovementErr: fmt.Errorf("%w: material Chapa has 15.5 un, requested 20", core.ErrInsufficientStock),
	}
	handler := newTestServer(t, svc)
	token := makeToken(t, "u-7", "Carlos", core.RoleMover)

	rec := doRequest(handler, http.MethodPost, "/api/transactions", token,
		`{"material_id":"m-1","type":"SAIDA","quantidade":"20"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "INSUFFICIENT_STOCK" {
		t.Errorf("Expected code INSUFFICIENT_STOCK, got %v", body["code"])
	}
}

func TestCreateMovement_ForbiddenForReader(t *testing.T) {
	svc := &stubService{}
	handler := newTestServer(t, svc)
	token := makeToken(t, "u-9", "Leitor", core.RoleReader)

	rec := doRequest(handler, http.MethodPost, "/api/transactions", token,
		`{"material_id":"m-1","type":"ENTRADA","quantidade":"1"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for leitor, got %d", rec.Code)
	}
	if len(svc.movementsRecorded) != 0 {
		t.Error("Reader request must never reach the service")
	}
}

func TestMaterialManagement_RoleGates(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	moverToken := makeToken(t, "u-7", "Carlos", core.RoleMover)
	rec := doRequest(handler, http.MethodPost, "/api/materials", moverToken,
		`{"codigo_barras":"1","nome":"X","tipo":"MDF","unidade_medida":"un"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for movimentador creating material, got %d", rec.Code)
	}

	leaderToken := makeToken(t, "u-3", "Líder", core.RoleLeader)
	rec = doRequest(handler, http.MethodPost, "/api/materials", leaderToken,
		`{"codigo_barras":"1","nome":"X","tipo":"MDF","unidade_medida":"un"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201 for lider creating material, got %d", rec.Code)
	}

	// Delete is admin-only, even for leaders.
	rec = doRequest(handler, http.MethodDelete, "/api/materials/m-1", leaderToken, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for lider deleting material, got %d", rec.Code)
	}
	adminToken := makeToken(t, "u-1", "Ana", core.RoleAdmin)
	rec = doRequest(handler, http.MethodDelete, "/api/materials/m-1", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin deleting material, got %d", rec.Code)
	}
}

func TestAdminRoutes_AdminOnly(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	leaderToken := makeToken(t, "u-3", "Líder", core.RoleLeader)
	rec := doRequest(handler, http.MethodGet, "/api/admin/users", leaderToken, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for lider on admin route, got %d", rec.Code)
	}

	adminToken := makeToken(t, "u-1", "Ana", core.RoleAdmin)
	rec = doRequest(handler, http.MethodGet, "/api/admin/users", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", rec.Code)
	}

	rec = doRequest(handler, http.MethodPut, "/api/admin/users/u-2/role", adminToken, `{"role":"lider"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 updating role, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(handler, http.MethodPut, "/api/admin/users/u-2/role", adminToken, `{"role":"gerente"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	rec := doRequest(handler, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"senha123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected auth_token cookie")
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Error("Expected HttpOnly Secure cookie")
	}

	body := decodeBody(t, rec)
	if body["access_token"] == "" || body["access_token"] == nil {
		t.Error("Expected access_token in body")
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("Expected user object, got %v", body["user"])
	}
	if user["nome"] != "Ana" {
		t.Errorf("Expected user nome Ana, got %v", user["nome"])
	}

	// The returned token must be accepted by the protected routes.
	token, _ := body["access_token"].(string)
	rec = doRequest(handler, http.MethodGet, "/api/stats", token, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected issued token to be accepted, got %d", rec.Code)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := newTestServer(t, &stubService{authenticateErr: core.ErrUnauthorized})

	rec := doRequest(handler, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"errada"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	// Generic message regardless of which part failed.
	if body["error"] != "invalid email or password" {
		t.Errorf("Expected generic credential error, got %v", body["error"])
	}
}

func TestRegister(t *testing.T) {
	handler := newTestServer(t, &stubService{})

	rec := doRequest(handler, http.MethodPost, "/api/auth/register", "",
		`{"nome":"Ana","email":"ana@example.com","password":"senha123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Usuário cadastrado com sucesso" {
		t.Errorf("Unexpected message: %v", body["message"])
	}

	rec = doRequest(handler, http.MethodPost, "/api/auth/register", "", `{"nome":"Ana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for incomplete registration, got %d", rec.Code)
	}
}

func TestGetMaterial_NotFound(t *testing.T) {
	handler := newTestServer(t, &stubService{})
	token := makeToken(t, "u-9", "Leitor", core.RoleReader)

	rec := doRequest(handler, http.MethodGet, "/api/materials/nope", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %v", body["code"])
	}
}

func TestListMovements_LimitValidation(t *testing.T) {
	handler := newTestServer(t, &stubService{})
	token := makeToken(t, "u-9", "Leitor", core.RoleReader)

	rec := doRequest(handler, http.MethodGet, "/api/transactions?limit=abc", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric limit, got %d", rec.Code)
	}
	rec = doRequest(handler, http.MethodGet, "/api/transactions?limit=-1", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative limit, got %d", rec.Code)
	}
	rec = doRequest(handler, http.MethodGet, "/api/transactions", token, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 with default limit, got %d", rec.Code)
	}
}

func TestExport_ContentType(t *testing.T) {
	handler := newTestServer(t, &stubService{})
	token := makeToken(t, "u-9", "Leitor", core.RoleReader)

	rec := doRequest(handler, http.MethodGet, "/api/export/materials", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Expected attachment disposition, got %q", cd)
	}
}
