package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// List devuelve el catálogo completo ordenado por nombre ascendente.
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete falla con domain.ErrConflict si alguna línea de movimiento
	// referencia el producto (RESTRICT, nunca cascada).
	Delete(ctx context.Context, id int64) error
	// NamesByID resuelve los ids dados a su nombre; los ids inexistentes
	// simplemente no aparecen en el mapa resultante.
	NamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}
