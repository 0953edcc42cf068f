package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de entradas de auditoría escritas por este núcleo.
const (
	AuditCategoryReplenishmentPolicy = "replenishment_policy"
)

// AuditEntry entrada append-only del log de auditoría. El núcleo solo anexa;
// nunca consulta este log.
type AuditEntry struct {
	ID          string
	Timestamp   time.Time
	Actor       string
	Category    string
	MaterialID  string
	WarehouseID string

	// CapitalImpact variación de capital inmovilizado que produjo el cambio
	// de parámetros: (stockSeguridadNuevo - anterior) × precio estándar.
	CapitalImpact *decimal.Decimal

	Details string
}
