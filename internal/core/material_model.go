package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Units of measure accepted for a material.
const (
	UnitKilogram    = "kg"
	UnitMeter       = "m"
	UnitSquareMeter = "m2"
	UnitCubicMeter  = "m3"
	UnitPiece       = "un"
)

// ValidUnit reports whether u is one of the accepted units of measure.
func ValidUnit(u string) bool {
	switch u {
	case UnitKilogram, UnitMeter, UnitSquareMeter, UnitCubicMeter, UnitPiece:
		return true
	}
	return false
}

// Material represents a tracked surplus/offcut stock item.
// Quantity is decimal — fractional kilograms and meters are valid — and must
// never go below zero. JSON names follow the wire format the existing
// clients already speak.
type Material struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"codigo_barras"`
	Name      string          `json:"nome"`
	Category  string          `json:"tipo"`
	Color     string          `json:"cor"`
	Quantity  decimal.Decimal `json:"quantidade_atual"`
	Unit      string          `json:"unidade_medida"`
	Location  string          `json:"localizacao_pavilhao"`
	Notes     string          `json:"observacoes"`
	CreatedAt time.Time       `json:"data_cadastro"`
	UpdatedAt time.Time       `json:"-"`
}
