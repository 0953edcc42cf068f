package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryData parámetros de stock de un material en una bodega.
// Los niveles (min/max/reorden/seguridad) los escribe el orquestador de
// políticas; cantidades en unidades enteras de política, existencias en decimal.
type InventoryData struct {
	IssuableQty     decimal.Decimal `json:"issuable_qty"`
	ReservedQty     decimal.Decimal `json:"reserved_qty"`
	MinStockLevel   int64           `json:"min_stock_level"`
	MaxStockLevel   int64           `json:"max_stock_level"`
	ReorderPointQty int64           `json:"reorder_point_qty"`
	SafetyStockQty  int64           `json:"safety_stock_qty"`

	CriticalityScore      int     `json:"criticality_score"`
	CriticalityClass      string  `json:"criticality_class"` // A..D, vacío si no clasificado
	CostClass             int     `json:"cost_class"`        // 1..4, 0 si no clasificado
	ServiceLevelTargetPct float64 `json:"service_level_target_pct"`
}

// ProcurementData datos de abastecimiento (precio y componentes de lead time).
// Se consumen como entrada de solo lectura desde los acuerdos de compra.
type ProcurementData struct {
	StandardPrice              decimal.Decimal `json:"standard_price"`
	PurchasingProcessingDays   int             `json:"purchasing_processing_days"`
	PlannedDeliveryDays        int             `json:"planned_delivery_days"`
	GoodsReceiptProcessingDays int             `json:"goods_receipt_processing_days"`
}

// TotalLeadTimeDays lead time total: compras + entrega + recepción.
func (p ProcurementData) TotalLeadTimeDays() int {
	return p.PurchasingProcessingDays + p.PlannedDeliveryDays + p.GoodsReceiptProcessingDays
}

// WarehouseStockRecord materialización de un material en una bodega/sección.
// Invariante: exactamente un registro por par (material, bodega) extendido.
// Lo crea/borra la materialización; el orquestador de políticas actualiza campos.
type WarehouseStockRecord struct {
	MaterialID    string // = MaterialMasterRecord.ID
	MaterialCode  string
	WarehouseID   string
	WarehouseName string
	SectionID     string

	Inventory   InventoryData
	Procurement ProcurementData

	CreatedAt time.Time
	UpdatedAt time.Time
}
