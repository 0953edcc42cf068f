package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de consumo (histórico inmutable de movimientos).
const (
	ConsumptionTypeIssue      = "issue"
	ConsumptionTypeReceipt    = "receipt"
	ConsumptionTypeAdjustment = "adjustment"
)

// ConsumptionEvent registro histórico de movimiento de un material.
// Entrada de solo lectura para las estadísticas de demanda; este núcleo
// nunca lo muta.
type ConsumptionEvent struct {
	ID          string
	MaterialID  string
	WarehouseID string
	Type        string // issue, receipt, adjustment
	Quantity    decimal.Decimal
	OccurredAt  time.Time
}
