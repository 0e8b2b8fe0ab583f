package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ValidMovementType indica si el tipo es IN u OUT.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// Movement es la cabecera de una transacción de inventario: entrada o salida
// con una o más líneas. Inmutable una vez creada; el movimiento y sus líneas
// se persisten como una sola unidad atómica.
type Movement struct {
	ID        int64
	Type      string
	Notes     string
	Timestamp time.Time
	Lines     []Line
}

// Line es un renglón de un movimiento: referencia un producto del catálogo
// con una cantidad estrictamente positiva. ProductName se denormaliza en
// lectura para presentación; no se persiste en la línea.
type Line struct {
	ID          int64
	MovementID  int64
	ProductID   int64
	ProductName string
	Quantity    int64
}
