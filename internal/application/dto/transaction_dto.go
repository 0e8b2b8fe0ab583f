package dto

import "time"

// CreateTransactionDetail renglón de una transacción entrante: producto por id
// y cantidad estrictamente positiva.
type CreateTransactionDetail struct {
	Product  int64 `json:"product" validate:"required"`
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// CreateTransactionRequest entrada para registrar un movimiento de inventario.
type CreateTransactionRequest struct {
	TransactionType string                    `json:"transaction_type" validate:"required,oneof=IN OUT"`
	Notes           string                    `json:"notes"`
	Details         []CreateTransactionDetail `json:"details" validate:"required,min=1"`
}

// TransactionDetailResponse renglón expandido con el nombre del producto
// denormalizado para presentación.
type TransactionDetailResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// TransactionResponse movimiento con sus renglones expandidos.
type TransactionResponse struct {
	ID              int64                       `json:"id"`
	TransactionType string                      `json:"transaction_type"`
	Timestamp       time.Time                   `json:"timestamp"`
	Notes           string                      `json:"notes"`
	Details         []TransactionDetailResponse `json:"details"`
}
