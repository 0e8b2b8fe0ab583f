package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de
// movimientos (append-only). Create inserta cabecera y líneas; para que la
// escritura sea atómica debe invocarse con repositorios atados a una
// transacción (ver inventory.TxRunner).
type MovementRepository interface {
	// Create persiste el movimiento y sus líneas, y asigna los ids generados.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si el movimiento no existe.
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// List devuelve todos los movimientos con líneas expandidas (nombre de
	// producto incluido), orden: timestamp descendente, id descendente.
	List(ctx context.Context) ([]*entity.Movement, error)
	// ListByProduct devuelve los movimientos que tocan el producto, mismo
	// orden que List, con TODAS sus líneas; el recorte por producto lo hace
	// el caso de uso de consulta.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
}
