package core_test

import (
	"encoding/json"
	"strings"
	"testing"

	"sobracorte/internal/core"

	"github.com/shopspring/decimal"
)

func TestValidUnit(t *testing.T) {
	for _, unit := range []string{"kg", "m", "m2", "m3", "un"} {
		if !core.ValidUnit(unit) {
			t.Errorf("Expected %q to be a valid unit", unit)
		}
	}
	for _, unit := range []string{"", "KG", "litros", "cm"} {
		if core.ValidUnit(unit) {
			t.Errorf("Expected %q to be rejected", unit)
		}
	}
}

func TestValidMovementType(t *testing.T) {
	if !core.ValidMovementType(core.MovementInbound) || !core.ValidMovementType(core.MovementOutbound) {
		t.Error("Expected ENTRADA and SAIDA to be valid")
	}
	for _, mt := range []core.MovementType{"", "entrada", "AJUSTE"} {
		if core.ValidMovementType(mt) {
			t.Errorf("Expected %q to be rejected", mt)
		}
	}
}

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role      string
		canMove   bool
		canManage bool
		canAdmin  bool
	}{
		{core.RoleAdmin, true, true, true},
		{core.RoleLeader, true, true, false},
		{core.RoleMover, true, false, false},
		{core.RoleReader, false, false, false},
	}
	for _, tc := range cases {
		if got := core.CanMoveStock(tc.role); got != tc.canMove {
			t.Errorf("CanMoveStock(%q) = %v, want %v", tc.role, got, tc.canMove)
		}
		if got := core.CanManageMaterials(tc.role); got != tc.canManage {
			t.Errorf("CanManageMaterials(%q) = %v, want %v", tc.role, got, tc.canManage)
		}
		if got := core.CanManageUsers(tc.role); got != tc.canAdmin {
			t.Errorf("CanManageUsers(%q) = %v, want %v", tc.role, got, tc.canAdmin)
		}
	}
}

func TestUserJSON_NeverExposesHash(t *testing.T) {
	u := core.User{
		ID:           "u-1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         core.RoleAdmin,
		IsActive:     true,
	}
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(out), "$2a$") || strings.Contains(string(out), "password") {
		t.Errorf("Serialized user leaks credentials: %s", out)
	}
}

func TestMaterialJSON_WireFieldNames(t *testing.T) {
	m := core.Material{
		ID:       "m-1",
		Barcode:  "789",
		Name:     "Chapa MDF",
		Category: "MDF",
		Quantity: decimal.RequireFromString("12.5"),
		Unit:     "un",
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, field := range []string{"codigo_barras", "nome", "tipo", "quantidade_atual", "unidade_medida", "data_cadastro"} {
		if !strings.Contains(string(out), field) {
			t.Errorf("Expected field %q on the wire, got %s", field, out)
		}
	}
}
