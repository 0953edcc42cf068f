package repository

// CounterRepository puerto de las secuencias de códigos de material.
// IncrementAndGet solo debe invocarse dentro de la transacción de
// materialización: el incremento y la escritura de stock se observan juntos
// o no se observan. Contador no aprovisionado o corrupto → ErrDataIntegrity.
type CounterRepository interface {
	IncrementAndGet(typeCode string) (int64, error)
}
