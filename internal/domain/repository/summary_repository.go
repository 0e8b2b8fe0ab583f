package repository

import "context"

// SummaryRow es el resultado agregado por producto: entradas, salidas y stock
// neto (in - out), recalculado desde el historial completo de líneas.
type SummaryRow struct {
	ProductID    int64
	ProductName  string
	SKU          string
	InQty        int64
	OutQty       int64
	CurrentStock int64
}

// StockRow es la vista reducida producto → cantidad disponible.
type StockRow struct {
	ProductName       string
	AvailableQuantity int64
}

// SummaryRepository define el puerto de consultas agregadas de solo lectura
// sobre el libro de movimientos. Cada llamada recalcula desde las líneas
// históricas; no existe ningún agregado materializado.
type SummaryRepository interface {
	// Summary agrega por producto. Con includeUntouched se listan también los
	// productos del catálogo sin movimientos (todo en cero); sin él, solo los
	// productos con al menos una línea.
	Summary(ctx context.Context, includeUntouched bool) ([]SummaryRow, error)
	// StockLevels devuelve producto → cantidad disponible solo para productos
	// con al menos una línea, ordenado por nombre.
	StockLevels(ctx context.Context) ([]StockRow, error)
	// CurrentStock devuelve el stock neto del producto; 0 si no tiene
	// movimientos (no es un error).
	CurrentStock(ctx context.Context, productID int64) (int64, error)
}
