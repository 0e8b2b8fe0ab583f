package entity

import "time"

// Product representa una entrada del catálogo. Name es el identificador
// principal de cara al usuario (único, no vacío); SKU y Description son
// opcionales. El stock NO vive aquí: siempre se deriva del libro de movimientos.
type Product struct {
	ID          int64
	Name        string
	SKU         string
	Description string
	CreatedAt   time.Time
}
