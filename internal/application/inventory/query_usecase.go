package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockQueryUseCase vistas derivadas del libro de movimientos: listado de
// transacciones, historial por producto, resumen de inventario y stock neto.
// Cada lectura recalcula desde el historial; no hay agregados en caché.
type StockQueryUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	summaryRepo repository.SummaryRepository

	// includeUntouched: el resumen lista también productos sin movimientos.
	includeUntouched bool
}

// NewStockQueryUseCase construye el caso de uso de consulta.
func NewStockQueryUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	summaryRepo repository.SummaryRepository,
	includeUntouched bool,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		movRepo:          movRepo,
		productRepo:      productRepo,
		summaryRepo:      summaryRepo,
		includeUntouched: includeUntouched,
	}
}

// ListTransactions devuelve todos los movimientos con líneas expandidas,
// más reciente primero (empates de timestamp: gana el id mayor).
func (uc *StockQueryUseCase) ListTransactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	movements, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(movements), nil
}

// GetTransaction devuelve un movimiento por id; (nil, nil) si no existe.
func (uc *StockQueryUseCase) GetTransaction(ctx context.Context, id int64) (*dto.TransactionResponse, error) {
	movement, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	return toTransactionResponse(movement, nil), nil
}

// TransactionHistory resuelve el producto por nombre y devuelve sus
// movimientos, más reciente primero. Cada movimiento expone ÚNICAMENTE las
// líneas del producto consultado: un movimiento que toca cinco productos se
// recorta a las líneas del que se pidió.
func (uc *StockQueryUseCase) TransactionHistory(ctx context.Context, productName string) ([]dto.TransactionResponse, error) {
	product, err := uc.productRepo.GetByName(ctx, productName)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %q: %w", productName, domain.ErrNotFound)
	}
	movements, err := uc.movRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	scoped := make([]*entity.Movement, 0, len(movements))
	for _, m := range movements {
		sm := &entity.Movement{
			ID:        m.ID,
			Type:      m.Type,
			Notes:     m.Notes,
			Timestamp: m.Timestamp,
		}
		for _, l := range m.Lines {
			if l.ProductID == product.ID {
				sm.Lines = append(sm.Lines, l)
			}
		}
		scoped = append(scoped, sm)
	}
	return toTransactionResponses(scoped), nil
}

// Summary agrega entradas, salidas y stock neto por producto. Según la
// configuración incluye el catálogo completo (productos sin movimientos en
// cero) o solo los productos con al menos una línea.
func (uc *StockQueryUseCase) Summary(ctx context.Context) ([]dto.InventorySummaryRow, error) {
	rows, err := uc.summaryRepo.Summary(ctx, uc.includeUntouched)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventorySummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventorySummaryRow{
			ProductID:    r.ProductID,
			Product:      r.ProductName,
			SKU:          r.SKU,
			InQty:        r.InQty,
			OutQty:       r.OutQty,
			CurrentStock: r.CurrentStock,
		})
	}
	return out, nil
}

// StockLevels vista reducida producto → cantidad disponible; omite siempre
// los productos sin movimientos.
func (uc *StockQueryUseCase) StockLevels(ctx context.Context) ([]dto.StockLevelRow, error) {
	rows, err := uc.summaryRepo.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockLevelRow{
			Product:           r.ProductName,
			AvailableQuantity: r.AvailableQuantity,
		})
	}
	return out, nil
}

// CurrentStock stock neto del producto: suma de entradas menos suma de
// salidas sobre todo el historial; 0 sin movimientos.
func (uc *StockQueryUseCase) CurrentStock(ctx context.Context, productID int64) (int64, error) {
	return uc.summaryRepo.CurrentStock(ctx, productID)
}

func toTransactionResponses(movements []*entity.Movement) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toTransactionResponse(m, nil))
	}
	return out
}
