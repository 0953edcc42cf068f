package entity

import "time"

// Estados del ciclo de vida de una solicitud de material.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Tipos de solicitud. Comparten el mismo circuito de aprobación pero divergen
// en el efecto de materialización (unión etiquetada, no herencia).
const (
	RequestTypeNewMaterial = "new_material"
	RequestTypeExtension   = "extension"
	RequestTypeRemoval     = "removal"
)

// ApprovalLevels niveles de aprobación requeridos antes de materializar.
const ApprovalLevels = 3

// ApprovalSlot un nivel de aprobación: quién y cuándo.
type ApprovalSlot struct {
	Approved   bool       `json:"approved"`
	Approver   string     `json:"approver,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// Rejection detalle del rechazo (terminal, sin importar niveles ya aprobados).
type Rejection struct {
	Reason string    `json:"reason"`
	By     string    `json:"by"`
	At     time.Time `json:"at"`
}

// MaterialMasterRecord identidad de un ítem del catálogo. Se crea al someter la
// solicitud (PendingApproval, slots vacíos), solo lo muta el circuito de
// aprobación y nunca se borra: los rechazados quedan para auditoría.
type MaterialMasterRecord struct {
	ID               string
	MaterialCode     string // vacío hasta que la materialización emite el código
	MaterialTypeCode string
	Status           string
	RequestType      string

	// TargetMaterialID: para extension/removal, el material ya codificado al
	// que aplica la solicitud. Vacío en new_material (la solicitud ES el maestro).
	TargetMaterialID string

	Description  string
	DepartmentID string
	SectionID    string
	Attributes   map[string]string

	Approvals [ApprovalLevels]ApprovalSlot
	Rejection *Rejection

	// Bodega solicitada y valores semilla para la materialización.
	RequestedWarehouseID   string
	RequestedWarehouseName string
	InventoryDefaults      InventoryData
	ProcurementDefaults    ProcurementData

	// WarehouseIDs bodegas donde el material está extendido (desnormalizado,
	// mantenido por la materialización).
	WarehouseIDs []string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextApprovalLevel devuelve el nivel más bajo aún no aprobado (1..3),
// o 0 si los tres niveles ya fueron otorgados.
func (m *MaterialMasterRecord) NextApprovalLevel() int {
	for i := range m.Approvals {
		if !m.Approvals[i].Approved {
			return i + 1
		}
	}
	return 0
}

// FullyApproved indica si los tres niveles están otorgados.
func (m *MaterialMasterRecord) FullyApproved() bool {
	return m.NextApprovalLevel() == 0
}

// HasWarehouse indica si la bodega figura en la lista desnormalizada.
func (m *MaterialMasterRecord) HasWarehouse(warehouseID string) bool {
	for _, id := range m.WarehouseIDs {
		if id == warehouseID {
			return true
		}
	}
	return false
}
