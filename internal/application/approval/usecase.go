package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// Workflow máquina de estados de aprobación en tres niveles. Estados:
// PendingApproval → {Approved | Rejected}, ambos terminales. El único efecto
// observable ocurre en la transición a Approved (materialización); las
// aprobaciones parciales solo persisten el slot.
type Workflow struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	stockRepo    repository.WarehouseStockRepository
	now          func() time.Time
}

// NewWorkflow construye el circuito de aprobación. stockRepo alimenta las
// consultas de detalle; las escrituras de stock pasan siempre por TxRunner.
func NewWorkflow(txRunner TxRunner, materialRepo repository.MaterialRepository, stockRepo repository.WarehouseStockRepository) *Workflow {
	return &Workflow{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		now:          time.Now,
	}
}

// SubmitInput solicitud de material. Para extension/removal, TargetMaterialID
// referencia el material ya codificado al que aplica.
type SubmitInput struct {
	RequestType      string
	MaterialTypeCode string
	TargetMaterialID string
	Description      string
	DepartmentID     string
	SectionID        string
	WarehouseID      string
	WarehouseName    string
	Attributes       map[string]string

	InventoryDefaults   entity.InventoryData
	ProcurementDefaults entity.ProcurementData

	RequestedBy string
}

// Submit crea la solicitud en PendingApproval con los tres slots vacíos.
// Nada se valida contra el estado de otras solicitudes: la consistencia
// fuerte se decide recién en la materialización, con lecturas frescas.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*entity.MaterialMasterRecord, error) {
	if err := w.validateSubmit(in); err != nil {
		return nil, err
	}

	now := w.now()
	m := &entity.MaterialMasterRecord{
		ID:                     uuid.New().String(),
		MaterialTypeCode:       in.MaterialTypeCode,
		Status:                 entity.StatusPendingApproval,
		RequestType:            in.RequestType,
		TargetMaterialID:       in.TargetMaterialID,
		Description:            in.Description,
		DepartmentID:           in.DepartmentID,
		SectionID:              in.SectionID,
		Attributes:             in.Attributes,
		RequestedWarehouseID:   in.WarehouseID,
		RequestedWarehouseName: in.WarehouseName,
		InventoryDefaults:      in.InventoryDefaults,
		ProcurementDefaults:    in.ProcurementDefaults,
		CreatedBy:              in.RequestedBy,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if m.Attributes == nil {
		m.Attributes = map[string]string{}
	}

	if in.RequestType != entity.RequestTypeNewMaterial {
		target, err := w.materialRepo.GetByID(in.TargetMaterialID)
		if err != nil {
			return nil, err
		}
		if target == nil || target.MaterialCode == "" {
			return nil, fmt.Errorf("%w: material destino no existe o no está codificado", domain.ErrValidation)
		}
	}

	if err := w.materialRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (w *Workflow) validateSubmit(in SubmitInput) error {
	switch in.RequestType {
	case entity.RequestTypeNewMaterial:
		if in.MaterialTypeCode == "" {
			return fmt.Errorf("%w: material_type_code requerido", domain.ErrValidation)
		}
	case entity.RequestTypeExtension, entity.RequestTypeRemoval:
		if in.TargetMaterialID == "" {
			return fmt.Errorf("%w: target_material_id requerido", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: request_type desconocido %q", domain.ErrValidation, in.RequestType)
	}
	if in.WarehouseID == "" {
		return fmt.Errorf("%w: warehouse_id requerido", domain.ErrValidation)
	}
	if in.RequestedBy == "" {
		return fmt.Errorf("%w: solicitante requerido", domain.ErrValidation)
	}
	return nil
}

// ApproveResult resultado de una aprobación.
type ApproveResult struct {
	Record       *entity.MaterialMasterRecord
	Materialized bool
	MaterialCode string // emitido solo en new_material materializado
}

// Approve otorga el nivel indicado. Los niveles se otorgan estrictamente en
// orden (nivel = primer slot no aprobado); si este era el nivel 3 y los dos
// anteriores ya estaban otorgados, el registro pasa a Approved y la
// materialización corre dentro de la misma transacción atómica.
//
// Toda la operación vive dentro de TxRunner.Run: la relectura fresca de los
// slots hace que de dos aprobaciones finales concurrentes solo una
// materialice; la segunda observa el registro ya Approved y falla con
// ErrTerminalState sin haber escrito nada.
func (w *Workflow) Approve(ctx context.Context, id string, level int, approver string) (*ApproveResult, error) {
	if level < 1 || level > entity.ApprovalLevels {
		return nil, fmt.Errorf("%w: nivel %d fuera de rango 1..%d", domain.ErrValidation, level, entity.ApprovalLevels)
	}
	if approver == "" {
		return nil, fmt.Errorf("%w: aprobador requerido", domain.ErrValidation)
	}

	var result ApproveResult
	err := w.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.WarehouseStockRepository,
		counterRepo repository.CounterRepository,
	) error {
		// Relectura fresca con bloqueo: estado y slots al momento de ejecutar.
		m, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Status != entity.StatusPendingApproval {
			return fmt.Errorf("%w: estado %s", domain.ErrTerminalState, m.Status)
		}
		next := m.NextApprovalLevel()
		if level != next {
			return fmt.Errorf("%w: corresponde el nivel %d, solicitado %d", domain.ErrOutOfOrderApproval, next, level)
		}

		now := w.now()
		m.Approvals[level-1] = entity.ApprovalSlot{
			Approved:   true,
			Approver:   approver,
			ApprovedAt: &now,
		}
		m.UpdatedAt = now

		if m.FullyApproved() {
			m.Status = entity.StatusApproved
			code, err := materialize(m, materialRepo, stockRepo, counterRepo, now)
			if err != nil {
				return err
			}
			result.Materialized = true
			result.MaterialCode = code
		}

		if err := materialRepo.Update(m); err != nil {
			return err
		}
		result.Record = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Reject rechaza la solicitud. Terminal sin importar cuántos niveles ya
// estaban aprobados; ningún Approve posterior es posible.
func (w *Workflow) Reject(ctx context.Context, id, reason, approver string) (*entity.MaterialMasterRecord, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: motivo de rechazo requerido", domain.ErrValidation)
	}
	if approver == "" {
		return nil, fmt.Errorf("%w: aprobador requerido", domain.ErrValidation)
	}

	var rejected *entity.MaterialMasterRecord
	err := w.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.WarehouseStockRepository,
		counterRepo repository.CounterRepository,
	) error {
		m, err := materialRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Status != entity.StatusPendingApproval {
			return fmt.Errorf("%w: estado %s", domain.ErrTerminalState, m.Status)
		}

		now := w.now()
		m.Status = entity.StatusRejected
		m.Rejection = &entity.Rejection{Reason: reason, By: approver, At: now}
		m.UpdatedAt = now
		if err := materialRepo.Update(m); err != nil {
			return err
		}
		rejected = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}
