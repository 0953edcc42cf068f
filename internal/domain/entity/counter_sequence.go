package entity

import (
	"fmt"
	"time"
)

// CounterSequence secuencia monótona por tipo de material para emitir códigos.
// Solo se muta dentro de la transacción de materialización; la semántica
// read-then-write del almacén garantiza que dos materializaciones del mismo
// tipo nunca observen el mismo valor.
type CounterSequence struct {
	TypeCode  string
	LastValue int64
	UpdatedAt time.Time
}

// FormatMaterialCode construye el código legible: {tipo}-{consecutivo a 5 dígitos}.
func FormatMaterialCode(typeCode string, n int64) string {
	return fmt.Sprintf("%s-%05d", typeCode, n)
}
