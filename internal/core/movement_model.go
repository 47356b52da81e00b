package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock adjustment. Wire values are the
// Portuguese terms the existing clients send.
type MovementType string

const (
	MovementInbound  MovementType = "ENTRADA" // stock-in
	MovementOutbound MovementType = "SAIDA"   // stock-out
)

// ValidMovementType reports whether t is ENTRADA or SAIDA.
func ValidMovementType(t MovementType) bool {
	return t == MovementInbound || t == MovementOutbound
}

// Movement is one recorded stock adjustment. Movements are append-only:
// created exactly once inside the movement transaction, never updated or
// deleted. MaterialName and UserName are snapshots taken at recording time,
// so history stays readable after a material or user is removed.
type Movement struct {
	ID           string          `json:"id"`
	Type         MovementType    `json:"type"`
	Quantity     decimal.Decimal `json:"quantidade"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_nome"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_nome"`
	Note         string          `json:"observacoes,omitempty"`
	CreatedAt    time.Time       `json:"data_hora"`
}
