package app

import "github.com/shopspring/decimal"

// RegisterRequest carries a registration. Password is plaintext in flight
// only; it is hashed before anything touches storage.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// MaterialRequest carries material registration fields.
type MaterialRequest struct {
	Barcode  string
	Name     string
	Category string
	Color    string
	Quantity decimal.Decimal
	Unit     string
	Location string
	Notes    string
}

// MovementRequest carries one stock adjustment. Type is the raw wire value
// (ENTRADA or SAIDA); validation happens in the movement service.
type MovementRequest struct {
	MaterialID string
	Type       string
	Quantity   decimal.Decimal
	Note       string
	UserID     string
	UserName   string
}
