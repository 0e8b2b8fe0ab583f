package dto

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial).
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	SKU         *string `json:"sku"`
	Description *string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
}
