package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo consultas agregadas de solo lectura sobre el libro de
// movimientos. Cada consulta recalcula desde transaction_details: no existe
// columna de stock ni agregado materializado que pueda desincronizarse.
type SummaryRepo struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository construye el adaptador de agregación.
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

// Summary agrega entradas y salidas por producto. includeUntouched decide si
// el catálogo completo aparece (LEFT JOIN, ceros incluidos) o solo los
// productos con al menos una línea (JOIN).
func (r *SummaryRepo) Summary(ctx context.Context, includeUntouched bool) ([]repository.SummaryRow, error) {
	const summaryAll = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    COALESCE(SUM(d.quantity) FILTER (WHERE t.transaction_type = 'IN'),  0) AS in_qty,
	    COALESCE(SUM(d.quantity) FILTER (WHERE t.transaction_type = 'OUT'), 0) AS out_qty
	FROM products p
	LEFT JOIN transaction_details d ON d.product_id     = p.id
	LEFT JOIN stock_transactions  t ON t.id             = d.transaction_id
	GROUP BY p.id, p.name, p.sku
	ORDER BY p.name ASC`

	const summaryTouched = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    COALESCE(SUM(d.quantity) FILTER (WHERE t.transaction_type = 'IN'),  0) AS in_qty,
	    COALESCE(SUM(d.quantity) FILTER (WHERE t.transaction_type = 'OUT'), 0) AS out_qty
	FROM products p
	JOIN transaction_details d ON d.product_id = p.id
	JOIN stock_transactions  t ON t.id         = d.transaction_id
	GROUP BY p.id, p.name, p.sku
	ORDER BY p.name ASC`

	query := summaryTouched
	if includeUntouched {
		query = summaryAll
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summary.Summary: %w", err)
	}
	defer rows.Close()

	var results []repository.SummaryRow
	for rows.Next() {
		var row repository.SummaryRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.InQty, &row.OutQty); err != nil {
			return nil, fmt.Errorf("summary.Summary scan: %w", err)
		}
		row.CurrentStock = row.InQty - row.OutQty
		results = append(results, row)
	}
	return results, rows.Err()
}

// StockLevels vista producto → disponible; solo productos con historial.
func (r *SummaryRepo) StockLevels(ctx context.Context) ([]repository.StockRow, error) {
	const query = `
	SELECT
	    p.name,
	    COALESCE(SUM(CASE WHEN t.transaction_type = 'IN' THEN d.quantity ELSE -d.quantity END), 0) AS available
	FROM products p
	JOIN transaction_details d ON d.product_id = p.id
	JOIN stock_transactions  t ON t.id         = d.transaction_id
	GROUP BY p.id, p.name
	ORDER BY p.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summary.StockLevels: %w", err)
	}
	defer rows.Close()

	var results []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(&row.ProductName, &row.AvailableQuantity); err != nil {
			return nil, fmt.Errorf("summary.StockLevels scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CurrentStock stock neto de un producto; 0 sin movimientos (COALESCE).
func (r *SummaryRepo) CurrentStock(ctx context.Context, productID int64) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(CASE WHEN t.transaction_type = 'IN' THEN d.quantity ELSE -d.quantity END), 0)
	FROM transaction_details d
	JOIN stock_transactions t ON t.id = d.transaction_id
	WHERE d.product_id = $1`

	var stock int64
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&stock); err != nil {
		return 0, fmt.Errorf("summary.CurrentStock: %w", err)
	}
	return stock, nil
}
