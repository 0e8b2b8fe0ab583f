package dto

// InventorySummaryRow resumen por producto: entradas, salidas y stock neto.
type InventorySummaryRow struct {
	ProductID    int64  `json:"product_id"`
	Product      string `json:"product"`
	SKU          string `json:"sku"`
	InQty        int64  `json:"in_qty"`
	OutQty       int64  `json:"out_qty"`
	CurrentStock int64  `json:"current_stock"`
}

// StockLevelRow vista reducida producto → cantidad disponible.
type StockLevelRow struct {
	Product           string `json:"product"`
	AvailableQuantity int64  `json:"available_quantity"`
}
