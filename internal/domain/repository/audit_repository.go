package repository

import "github.com/jhoicas/materiales-api/internal/domain/entity"

// AuditRepository puerto del log de auditoría. Append-only: el núcleo anexa
// después de cada cambio de parámetros y nunca consulta el log.
type AuditRepository interface {
	Append(e *entity.AuditEntry) error
}
