package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL
// (usable con pool o tx). Los slots de aprobación, rechazo, atributos y
// defaults viajan como jsonb.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `
	id, material_code, material_type_code, status, request_type, target_material_id,
	description, department_id, section_id, attributes, approvals, rejection,
	requested_warehouse_id, requested_warehouse_name, inventory_defaults,
	procurement_defaults, warehouse_ids, created_by, created_at, updated_at`

// Create persiste la solicitud recién sometida.
func (r *MaterialRepo) Create(m *entity.MaterialMasterRecord) error {
	attributes, approvals, rejection, invDefaults, procDefaults, err := marshalMaterial(m)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO material_masters (` + materialColumns + `)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(context.Background(), query,
		m.ID, m.MaterialCode, m.MaterialTypeCode, m.Status, m.RequestType, m.TargetMaterialID,
		m.Description, m.DepartmentID, m.SectionID, attributes, approvals, rejection,
		m.RequestedWarehouseID, m.RequestedWarehouseName, invDefaults,
		procDefaults, m.WarehouseIDs, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create material master: %w", err)
	}
	return nil
}

// GetByID obtiene el registro; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.MaterialMasterRecord, error) {
	query := `SELECT ` + materialColumns + ` FROM material_masters WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE):
// la relectura fresca de los slots dentro de la transacción de aprobación.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.MaterialMasterRecord, error) {
	query := `SELECT ` + materialColumns + ` FROM material_masters WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste los campos mutables (estado, slots, código, desnormalizados).
func (r *MaterialRepo) Update(m *entity.MaterialMasterRecord) error {
	attributes, approvals, rejection, invDefaults, procDefaults, err := marshalMaterial(m)
	if err != nil {
		return err
	}
	query := `
		UPDATE material_masters SET
			material_code = NULLIF($2, ''), status = $3, attributes = $4, approvals = $5,
			rejection = $6, inventory_defaults = $7, procurement_defaults = $8,
			warehouse_ids = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.MaterialCode, m.Status, attributes, approvals,
		rejection, invDefaults, procDefaults,
		m.WarehouseIDs, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material master: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update material master %s: sin filas afectadas", m.ID)
	}
	return nil
}

// ListByStatus lista solicitudes por estado (cola de aprobaciones pendientes).
func (r *MaterialRepo) ListByStatus(status string, limit, offset int) ([]*entity.MaterialMasterRecord, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM material_masters WHERE status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials by status: %w", err)
	}
	defer rows.Close()

	var out []*entity.MaterialMasterRecord
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountByStatus total de solicitudes en un estado (metadatos de paginación).
func (r *MaterialRepo) CountByStatus(status string) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM material_masters WHERE status = $1`
	if err := r.q.QueryRow(context.Background(), query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("count materials by status: %w", err)
	}
	return total, nil
}

func (r *MaterialRepo) scanOne(row pgx.Row) (*entity.MaterialMasterRecord, error) {
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func scanMaterial(row pgx.Row) (*entity.MaterialMasterRecord, error) {
	var m entity.MaterialMasterRecord
	var materialCode, targetMaterialID *string
	var attributes, approvals, rejection, invDefaults, procDefaults []byte
	err := row.Scan(
		&m.ID, &materialCode, &m.MaterialTypeCode, &m.Status, &m.RequestType, &targetMaterialID,
		&m.Description, &m.DepartmentID, &m.SectionID, &attributes, &approvals, &rejection,
		&m.RequestedWarehouseID, &m.RequestedWarehouseName, &invDefaults,
		&procDefaults, &m.WarehouseIDs, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan material master: %w", err)
	}
	if materialCode != nil {
		m.MaterialCode = *materialCode
	}
	if targetMaterialID != nil {
		m.TargetMaterialID = *targetMaterialID
	}
	if err := json.Unmarshal(attributes, &m.Attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if err := json.Unmarshal(approvals, &m.Approvals); err != nil {
		return nil, fmt.Errorf("decode approvals: %w", err)
	}
	if len(rejection) > 0 && string(rejection) != "null" {
		if err := json.Unmarshal(rejection, &m.Rejection); err != nil {
			return nil, fmt.Errorf("decode rejection: %w", err)
		}
	}
	if err := json.Unmarshal(invDefaults, &m.InventoryDefaults); err != nil {
		return nil, fmt.Errorf("decode inventory defaults: %w", err)
	}
	if err := json.Unmarshal(procDefaults, &m.ProcurementDefaults); err != nil {
		return nil, fmt.Errorf("decode procurement defaults: %w", err)
	}
	return &m, nil
}

func marshalMaterial(m *entity.MaterialMasterRecord) (attributes, approvals, rejection, invDefaults, procDefaults []byte, err error) {
	if attributes, err = json.Marshal(m.Attributes); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode attributes: %w", err)
	}
	if approvals, err = json.Marshal(m.Approvals); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode approvals: %w", err)
	}
	if rejection, err = json.Marshal(m.Rejection); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode rejection: %w", err)
	}
	if invDefaults, err = json.Marshal(m.InventoryDefaults); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode inventory defaults: %w", err)
	}
	if procDefaults, err = json.Marshal(m.ProcurementDefaults); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("encode procurement defaults: %w", err)
	}
	return attributes, approvals, rejection, invDefaults, procDefaults, nil
}
