package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrValidation = errors.New("entrada inválida")

	// ErrStateConflict agrupa los rechazos por estado: la operación es válida
	// en sí misma pero el registro no está en el estado que la permite.
	ErrStateConflict      = errors.New("conflicto con el estado actual")
	ErrOutOfOrderApproval = fmt.Errorf("aprobación fuera de orden: %w", ErrStateConflict)
	ErrTerminalState      = fmt.Errorf("el registro está en estado terminal: %w", ErrStateConflict)

	// ErrTransientConflict: colisión de transacciones concurrentes tras agotar
	// los reintentos del almacén. El caller puede reenviar la misma operación.
	ErrTransientConflict = errors.New("conflicto transitorio de escritura, reintentar")

	// ErrDataIntegrity: documento contador ausente/corrupto o registro referenciado
	// desaparecido a mitad de transacción. No se reintenta; requiere intervención.
	ErrDataIntegrity = errors.New("integridad de datos comprometida")
)
