package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// SubmitMaterialRequest cuerpo para someter una solicitud de material.
type SubmitMaterialRequest struct {
	RequestType      string            `json:"request_type"` // new_material, extension, removal
	MaterialTypeCode string            `json:"material_type_code"`
	TargetMaterialID string            `json:"target_material_id,omitempty"`
	Description      string            `json:"description"`
	DepartmentID     string            `json:"department_id"`
	SectionID        string            `json:"section_id"`
	WarehouseID      string            `json:"warehouse_id"`
	WarehouseName    string            `json:"warehouse_name"`
	Attributes       map[string]string `json:"attributes,omitempty"`

	Inventory   InventoryDataDTO   `json:"inventory"`
	Procurement ProcurementDataDTO `json:"procurement"`
}

// InventoryDataDTO parámetros de inventario (semilla o vigentes).
type InventoryDataDTO struct {
	IssuableQty           decimal.Decimal `json:"issuable_qty"`
	ReservedQty           decimal.Decimal `json:"reserved_qty"`
	MinStockLevel         int64           `json:"min_stock_level"`
	MaxStockLevel         int64           `json:"max_stock_level"`
	ReorderPointQty       int64           `json:"reorder_point_qty"`
	SafetyStockQty        int64           `json:"safety_stock_qty"`
	CriticalityScore      int             `json:"criticality_score,omitempty"`
	CriticalityClass      string          `json:"criticality_class,omitempty"`
	CostClass             int             `json:"cost_class,omitempty"`
	ServiceLevelTargetPct float64         `json:"service_level_target_pct,omitempty"`
}

// ProcurementDataDTO precio y componentes de lead time.
type ProcurementDataDTO struct {
	StandardPrice              decimal.Decimal `json:"standard_price"`
	PurchasingProcessingDays   int             `json:"purchasing_processing_days"`
	PlannedDeliveryDays        int             `json:"planned_delivery_days"`
	GoodsReceiptProcessingDays int             `json:"goods_receipt_processing_days"`
}

// ApproveRequest cuerpo de aprobación de un nivel.
type ApproveRequest struct {
	Level int `json:"level"` // 1..3, estrictamente en orden
}

// RejectRequest cuerpo de rechazo (terminal).
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ApprovalSlotDTO estado de un nivel de aprobación.
type ApprovalSlotDTO struct {
	Approved   bool       `json:"approved"`
	Approver   string     `json:"approver,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// RejectionDTO detalle del rechazo.
type RejectionDTO struct {
	Reason string    `json:"reason"`
	By     string    `json:"by"`
	At     time.Time `json:"at"`
}

// MaterialResponse representación HTTP del maestro de materiales.
type MaterialResponse struct {
	ID               string            `json:"id"`
	MaterialCode     string            `json:"material_code,omitempty"`
	MaterialTypeCode string            `json:"material_type_code"`
	Status           string            `json:"status"`
	RequestType      string            `json:"request_type"`
	TargetMaterialID string            `json:"target_material_id,omitempty"`
	Description      string            `json:"description"`
	DepartmentID     string            `json:"department_id"`
	SectionID        string            `json:"section_id"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	Approvals        []ApprovalSlotDTO `json:"approvals"`
	Rejection        *RejectionDTO     `json:"rejection,omitempty"`
	WarehouseID      string            `json:"warehouse_id"`
	WarehouseIDs     []string          `json:"warehouse_ids"`
	CreatedBy        string            `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewMaterialResponse mapea la entidad a su representación HTTP.
func NewMaterialResponse(m *entity.MaterialMasterRecord) MaterialResponse {
	approvals := make([]ApprovalSlotDTO, len(m.Approvals))
	for i, a := range m.Approvals {
		approvals[i] = ApprovalSlotDTO{Approved: a.Approved, Approver: a.Approver, ApprovedAt: a.ApprovedAt}
	}
	resp := MaterialResponse{
		ID:               m.ID,
		MaterialCode:     m.MaterialCode,
		MaterialTypeCode: m.MaterialTypeCode,
		Status:           m.Status,
		RequestType:      m.RequestType,
		TargetMaterialID: m.TargetMaterialID,
		Description:      m.Description,
		DepartmentID:     m.DepartmentID,
		SectionID:        m.SectionID,
		Attributes:       m.Attributes,
		Approvals:        approvals,
		WarehouseID:      m.RequestedWarehouseID,
		WarehouseIDs:     m.WarehouseIDs,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Rejection != nil {
		resp.Rejection = &RejectionDTO{Reason: m.Rejection.Reason, By: m.Rejection.By, At: m.Rejection.At}
	}
	return resp
}

// WarehouseStockResponse representación HTTP del stock por bodega.
type WarehouseStockResponse struct {
	MaterialID    string             `json:"material_id"`
	MaterialCode  string             `json:"material_code"`
	WarehouseID   string             `json:"warehouse_id"`
	WarehouseName string             `json:"warehouse_name,omitempty"`
	SectionID     string             `json:"section_id,omitempty"`
	Inventory     InventoryDataDTO   `json:"inventory"`
	Procurement   ProcurementDataDTO `json:"procurement"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewWarehouseStockResponse mapea la entidad a su representación HTTP.
func NewWarehouseStockResponse(s *entity.WarehouseStockRecord) WarehouseStockResponse {
	return WarehouseStockResponse{
		MaterialID:    s.MaterialID,
		MaterialCode:  s.MaterialCode,
		WarehouseID:   s.WarehouseID,
		WarehouseName: s.WarehouseName,
		SectionID:     s.SectionID,
		Inventory:     newInventoryDTO(s.Inventory),
		Procurement:   newProcurementDTO(s.Procurement),
		UpdatedAt:     s.UpdatedAt,
	}
}

// MaterialListResponse página de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialDetailResponse vista de detalle: maestro + stock por bodega.
// La mezcla bodega-sobre-maestro es una regla explícita campo a campo
// (ver MergedInventory), no un volcado implícito de mapas.
type MaterialDetailResponse struct {
	Material MaterialResponse         `json:"material"`
	Stocks   []WarehouseStockResponse `json:"stocks"`

	// EffectiveInventory inventario vigente en la bodega solicitante: el
	// registro de bodega cuando existe, los defaults del maestro si no.
	EffectiveInventory InventoryDataDTO `json:"effective_inventory"`
}

// NewMaterialDetailResponse arma la vista de detalle.
func NewMaterialDetailResponse(m *entity.MaterialMasterRecord, stocks []*entity.WarehouseStockRecord) MaterialDetailResponse {
	resp := MaterialDetailResponse{
		Material: NewMaterialResponse(m),
		Stocks:   make([]WarehouseStockResponse, 0, len(stocks)),
	}
	var requested *entity.WarehouseStockRecord
	for _, s := range stocks {
		if s == nil {
			continue
		}
		resp.Stocks = append(resp.Stocks, NewWarehouseStockResponse(s))
		if s.WarehouseID == m.RequestedWarehouseID {
			requested = s
		}
	}
	resp.EffectiveInventory = MergedInventory(m, requested)
	return resp
}

// MergedInventory regla de prioridad explícita para la vista de detalle:
// cada campo de inventario sale del registro de bodega cuando el material
// está extendido allí; solo si no hay registro se usan los defaults del
// maestro (la solicitud original).
func MergedInventory(m *entity.MaterialMasterRecord, stock *entity.WarehouseStockRecord) InventoryDataDTO {
	if stock != nil {
		return newInventoryDTO(stock.Inventory)
	}
	return newInventoryDTO(m.InventoryDefaults)
}

func newInventoryDTO(d entity.InventoryData) InventoryDataDTO {
	return InventoryDataDTO{
		IssuableQty:           d.IssuableQty,
		ReservedQty:           d.ReservedQty,
		MinStockLevel:         d.MinStockLevel,
		MaxStockLevel:         d.MaxStockLevel,
		ReorderPointQty:       d.ReorderPointQty,
		SafetyStockQty:        d.SafetyStockQty,
		CriticalityScore:      d.CriticalityScore,
		CriticalityClass:      d.CriticalityClass,
		CostClass:             d.CostClass,
		ServiceLevelTargetPct: d.ServiceLevelTargetPct,
	}
}

func newProcurementDTO(p entity.ProcurementData) ProcurementDataDTO {
	return ProcurementDataDTO{
		StandardPrice:              p.StandardPrice,
		PurchasingProcessingDays:   p.PurchasingProcessingDays,
		PlannedDeliveryDays:        p.PlannedDeliveryDays,
		GoodsReceiptProcessingDays: p.GoodsReceiptProcessingDays,
	}
}

// ToEntityInventory convierte el DTO a la entidad de dominio.
func (d InventoryDataDTO) ToEntityInventory() entity.InventoryData {
	return entity.InventoryData{
		IssuableQty:           d.IssuableQty,
		ReservedQty:           d.ReservedQty,
		MinStockLevel:         d.MinStockLevel,
		MaxStockLevel:         d.MaxStockLevel,
		ReorderPointQty:       d.ReorderPointQty,
		SafetyStockQty:        d.SafetyStockQty,
		CriticalityScore:      d.CriticalityScore,
		CriticalityClass:      d.CriticalityClass,
		CostClass:             d.CostClass,
		ServiceLevelTargetPct: d.ServiceLevelTargetPct,
	}
}

// ToEntityProcurement convierte el DTO a la entidad de dominio.
func (d ProcurementDataDTO) ToEntityProcurement() entity.ProcurementData {
	return entity.ProcurementData{
		StandardPrice:              d.StandardPrice,
		PurchasingProcessingDays:   d.PurchasingProcessingDays,
		PlannedDeliveryDays:        d.PlannedDeliveryDays,
		GoodsReceiptProcessingDays: d.GoodsReceiptProcessingDays,
	}
}
